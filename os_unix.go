//go:build unix

package segalloc

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// osPageMapper is the default PageMapper: each call maps and unmaps its own
// independent anonymous region directly via unix.Mmap/unix.Munmap, the same
// one-mmap-per-region pattern other_examples/cznic-memory__memory.go uses
// for its own page-backed allocator.
type osPageMapper struct {
	pageSize uintptr
}

func newOSPageMapper() PageMapper {
	return &osPageMapper{pageSize: uintptr(os.Getpagesize())}
}

func (m *osPageMapper) PageSize() uintptr { return m.pageSize }

func (m *osPageMapper) MapPages(n uintptr) (uintptr, error) {
	n = alignToPage(n, m.pageSize)

	b, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, err
	}
	return uintptr(unsafe.Pointer(&b[0])), nil //nolint:gosec
}

func (m *osPageMapper) UnmapPages(addr uintptr, n uintptr) error {
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), n) //nolint:gosec
	return unix.Munmap(b)
}

// osHeapExtender is the default HeapExtender. It reserves one large
// PROT_NONE virtual address range up front and commits pages into it with
// unix.Mprotect as ExtendHeap is called, mirroring the Go runtime's own
// sysReserve/sysMap split (pianoyeg94-go-runtime-inside-out's
// memory_and_heap/mem_linux.go: sysReserveOS maps PROT_NONE, sysMapOS later
// mprotects a MAP_FIXED sub-range to PROT_READ|PROT_WRITE). This is what
// makes "contiguous with the previous extension" true without sbrk, which
// Go does not expose.
type osHeapExtender struct {
	base      uintptr // start of the reserved PROT_NONE range
	reserved  uintptr // total reserved bytes
	mapped    uintptr // bytes already mprotected to PROT_READ|PROT_WRITE
	committed uintptr // bytes handed out to callers so far (== next ExtendHeap's offset)
	pageSize  uintptr
}

func newOSHeapExtender(reserve uintptr) (HeapExtender, error) {
	pageSize := uintptr(os.Getpagesize())
	reserve = alignToPage(reserve, pageSize)

	b, err := unix.Mmap(-1, 0, int(reserve), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}

	return &osHeapExtender{
		base:     uintptr(unsafe.Pointer(&b[0])), //nolint:gosec
		reserved: reserve,
		pageSize: pageSize,
	}, nil
}

// ExtendHeap hands out the next `n` bytes of the reservation, committing
// whatever additional whole pages are needed to back them. The address it
// returns is always base+committed-before-this-call, so back-to-back calls
// are contiguous regardless of page-rounding inside the commit step.
func (e *osHeapExtender) ExtendHeap(n uintptr) (uintptr, error) {
	addr := e.base + e.committed
	newCommitted := e.committed + n
	if newCommitted > e.reserved {
		return 0, ErrOutOfMemory
	}

	needMapped := alignToPage(newCommitted, e.pageSize)
	if needMapped > e.mapped {
		grow := needMapped - e.mapped
		region := unsafe.Slice((*byte)(unsafe.Pointer(e.base+e.mapped)), grow) //nolint:gosec
		if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, err
		}
		e.mapped = needMapped
	}

	e.committed = newCommitted
	return addr, nil
}
