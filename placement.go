package segalloc

// getFree returns a free block with payload size >= req, creating one if
// none exists. The returned block is never a member of any free-list
// bucket: a hit found via first-fit is removed (and, if profitable, split —
// with only the leftover remainder reinserted); a fresh heap extension is an
// exact fit and is never inserted in the first place; a fresh mapping is
// never inserted either.
//
// This mirrors hive/alloc's FastAllocator.Alloc, which likewise inserts only
// the split remainder and hands the head of the split straight to the
// caller rather than round-tripping it through the free list.
func (h *Heap) getFree(req uint64) (block, error) {
	idx := bucketIndex(req)
	for i := idx; i < numBuckets; i++ {
		if b, ok := h.free.firstFit(i, req); ok {
			h.free.remove(b)
			return h.trySplit(b, req), nil
		}
	}

	if req <= largeThreshold {
		return h.growHeap(req)
	}
	return h.mapLarge(req)
}

// growHeap asks the heap extender for exactly req plus header and footer
// bytes and installs the result as a single free block spanning the whole
// new extent. The new block is an exact fit for req, so it is returned
// directly without ever entering a bucket.
func (h *Heap) growHeap(req uint64) (block, error) {
	need := uintptr(req) + 2*wordSize

	addr, err := h.extender.ExtendHeap(need)
	if err != nil {
		return block{}, ErrOutOfMemory
	}

	b := blockAt(addr)
	b.setHeaderAndFooter(req, false, false)

	if h.heapStart == 0 {
		h.heapStart = addr
	}
	h.heapEnd = addr + need

	return b, nil
}

// mappedRegionBytes computes the size of the independent mapping backing a
// large request: enough for the header plus the payload, rounded up to a
// whole number of pages. It is a pure function of req and pageSize so that
// Release can recompute the same value at unmap time without the engine
// having to remember it.
func mappedRegionBytes(req uint64, pageSize uintptr) uintptr {
	need := uintptr(req) + wordSize
	return alignToPage(need, pageSize)
}

// mapLarge asks the page mapper for an independent region and installs a
// header-only, footer-less block in it. heap_start and heap_end are
// untouched; the block is never inserted into any bucket.
func (h *Heap) mapLarge(req uint64) (block, error) {
	total := mappedRegionBytes(req, h.pageSize)

	addr, err := h.mapper.MapPages(total)
	if err != nil {
		return block{}, ErrOutOfMemory
	}

	b := blockAt(addr)
	b.setHeader(packWord(req, false, true))
	return b, nil
}
