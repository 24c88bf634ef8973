package segalloc

import "unsafe"

// fakeExtender is a slice-backed HeapExtender for tests: it hands out
// successive offsets into one pinned Go byte slice instead of talking to the
// OS, in the spirit of hivekit's own tests driving FastAllocator against an
// in-memory hive rather than a real file.
type fakeExtender struct {
	backing []byte
	next    uintptr
}

func newFakeExtender(size int) *fakeExtender {
	return &fakeExtender{backing: make([]byte, size)}
}

func (f *fakeExtender) base() uintptr {
	return uintptr(unsafe.Pointer(&f.backing[0])) //nolint:gosec
}

func (f *fakeExtender) ExtendHeap(n uintptr) (uintptr, error) {
	if f.next+n > uintptr(len(f.backing)) {
		return 0, ErrOutOfMemory
	}
	addr := f.base() + f.next
	f.next += n
	return addr, nil
}

// fakeMapper is a slice-backed PageMapper for tests. Each MapPages call
// allocates its own Go slice and remembers it by address so UnmapPages can
// release the matching reference; pageSize is fixed at a conventional 4096
// regardless of the host's real page size, to keep test arithmetic simple.
type fakeMapper struct {
	pageSize uintptr
	regions  map[uintptr][]byte
}

func newFakeMapper() *fakeMapper {
	return &fakeMapper{pageSize: 4096, regions: make(map[uintptr][]byte)}
}

func (f *fakeMapper) PageSize() uintptr { return f.pageSize }

func (f *fakeMapper) MapPages(n uintptr) (uintptr, error) {
	n = alignToPage(n, f.pageSize)
	buf := make([]byte, n)
	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec
	f.regions[addr] = buf
	return addr, nil
}

func (f *fakeMapper) UnmapPages(addr uintptr, _ uintptr) error {
	if _, ok := f.regions[addr]; !ok {
		return ErrInvalidPointer
	}
	delete(f.regions, addr)
	return nil
}

// newTestHeap builds a Heap over fresh fake collaborators, large enough for
// the small unit tests in this package to grow into repeatedly.
func newTestHeap() (*Heap, *fakeExtender, *fakeMapper) {
	ext := newFakeExtender(1 << 20)
	mp := newFakeMapper()
	h, err := NewHeap(&Config{Extender: ext, Mapper: mp})
	if err != nil {
		panic(err)
	}
	return h, ext, mp
}

// unsafeBytesForTest views n bytes starting at p as a byte slice, for tests
// that need to read or write payload contents directly.
func unsafeBytesForTest(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}

func uintptrOfTest(p unsafe.Pointer) uintptr { return uintptr(p) }

func pointerFromUintptrTest(addr uintptr) unsafe.Pointer { return unsafe.Pointer(addr) } //nolint:gosec
