package segalloc

import "unsafe"

// Allocate services a request for size bytes. size must be greater than
// zero. The returned pointer is 8-byte aligned and valid until passed to
// Release or Reallocate.
func (h *Heap) Allocate(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrInvalidArgument
	}

	req, err := roundRequest(size)
	if err != nil {
		return nil, err
	}

	b, err := h.getFree(req)
	if err != nil {
		return nil, err
	}

	if b.isMapped() {
		b.setHeader(packWord(b.payloadSize(), true, true))
	} else {
		b.setHeaderAndFooter(b.payloadSize(), true, false)
	}

	return unsafe.Pointer(b.payloadAddr()), nil //nolint:gosec
}

// ZeroAllocate allocates space for count elements of elemSize bytes each and
// zeroes it before returning. Both count and elemSize must be greater than
// zero; their product must not overflow uintptr.
func (h *Heap) ZeroAllocate(count, elemSize uintptr) (unsafe.Pointer, error) {
	if count == 0 || elemSize == 0 {
		return nil, ErrInvalidArgument
	}

	total := count * elemSize
	if elemSize != 0 && total/elemSize != count {
		return nil, ErrSizeOverflow
	}

	p, err := h.Allocate(total)
	if err != nil {
		return nil, err
	}

	dst := unsafe.Slice((*byte)(p), total) //nolint:gosec
	for i := range dst {
		dst[i] = 0
	}

	return p, nil
}

// Reallocate resizes the allocation at ptr to newSize bytes.
//
//   - ptr == nil is equivalent to Allocate(newSize).
//   - newSize == 0 releases ptr and returns (nil, nil). Some C allocators
//     instead fall through to malloc(0) on this path, returning a fresh
//     zero-size allocation; that fallthrough is deliberately not reproduced
//     here.
//   - Otherwise a new block is allocated, min(old payload, newSize) bytes
//     are copied from the old block, the old block is released, and the new
//     pointer is returned. No in-place grow is attempted.
func (h *Heap) Reallocate(ptr unsafe.Pointer, newSize uintptr) (unsafe.Pointer, error) {
	if ptr == nil {
		return h.Allocate(newSize)
	}

	if newSize == 0 {
		if err := h.Release(ptr); err != nil {
			return nil, err
		}
		return nil, nil
	}

	old, err := h.blockFromPointer(ptr)
	if err != nil {
		return nil, err
	}
	oldPayload := old.payloadSize()

	newPtr, err := h.Allocate(newSize)
	if err != nil {
		return nil, err
	}

	n := uintptr(oldPayload)
	if newSize < n {
		n = newSize
	}
	if n > 0 {
		src := unsafe.Slice((*byte)(ptr), n)    //nolint:gosec
		dst := unsafe.Slice((*byte)(newPtr), n) //nolint:gosec
		copy(dst, src)
	}

	if err := h.Release(ptr); err != nil {
		return nil, err
	}

	return newPtr, nil
}

// Release returns the block at ptr to the allocator. Mapped
// (large) blocks are returned directly to the page mapper; heap-resident
// blocks are marked free, coalesced with any free neighbors, and inserted
// into the free-list index.
func (h *Heap) Release(ptr unsafe.Pointer) error {
	if ptr == nil {
		return ErrInvalidArgument
	}

	addr := uintptr(ptr)
	b := blockAt(addr - wordSize)
	header := b.header()

	if !wordMapped(header) && !h.containsHeapAddr(addr) {
		return ErrInvalidPointer
	}
	if !wordAllocated(header) {
		return ErrDoubleFree
	}

	if wordMapped(header) {
		size := wordSizeOf(header)
		total := mappedRegionBytes(size, h.pageSize)
		return h.mapper.UnmapPages(b.headerAddr(), total)
	}

	b.setHeaderAndFooter(b.payloadSize(), false, false)
	merged := h.coalesce(b)
	h.free.insert(merged)
	return nil
}

// blockFromPointer resolves a caller-visible payload pointer back to its
// block, validating that it lies within the heap (for heap-resident blocks)
// and that it is currently marked allocated. Used by Reallocate, which needs
// the old block's payload size before it can compute the copy length.
func (h *Heap) blockFromPointer(ptr unsafe.Pointer) (block, error) {
	addr := uintptr(ptr)
	b := blockAt(addr - wordSize)
	header := b.header()

	if !wordMapped(header) && !h.containsHeapAddr(addr) {
		return block{}, ErrInvalidPointer
	}
	if !wordAllocated(header) {
		return block{}, ErrInvalidPointer
	}

	return b, nil
}
