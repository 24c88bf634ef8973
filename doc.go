// Package segalloc implements a general-purpose heap allocator with
// segregated free lists and boundary-tag coalescing.
//
// # Overview
//
// A Heap manages one contiguous, growable address range (the "small/heap"
// regime) plus a set of independently mapped regions for oversized requests
// (the "large/mapped" regime). Every block, in either regime, carries an
// 8-byte header packing its payload size and two flags: allocated and
// mapped. Heap-resident blocks additionally carry a matching footer, the
// boundary tag that lets Release find and merge free neighbors in O(1)
// without walking the whole heap.
//
// # Size classes
//
// Free heap-resident blocks are indexed by eight size-class buckets:
//
//	Bucket 0:    1 -   16 bytes
//	Bucket 1:   17 -   32 bytes
//	Bucket 2:   33 -   64 bytes
//	Bucket 3:   65 -  128 bytes
//	Bucket 4:  129 -  256 bytes
//	Bucket 5:  257 -  512 bytes
//	Bucket 6:  513 - 1024 bytes
//	Bucket 7: 1025+ bytes
//
// Blocks mapped for requests over 1024 bytes are never placed in bucket 7.
// But bucket 7 is not
// dead: a heap-resident free block can grow past 1024 bytes by coalescing
// with a free neighbor, in which case it lands in bucket 7 like any other
// free block and remains eligible for first-fit and splitting. The mapped
// flag on a block's header is a provenance marker, not a size-class
// membership test.
//
// Placement is first-fit: Allocate scans buckets from the smallest class
// that could hold the request upward, taking the first block whose payload
// is large enough. A block bigger than needed is split when the remainder
// can itself hold a full block; otherwise the whole block is handed out.
//
// # Growth and mapping
//
// Requests too large for the heap regime (over 1024 bytes) that no free
// block in bucket 7 can satisfy are serviced by mapping an independent
// region sized to fit, and unmapped directly on
// Release rather than being coalesced or returned to a bucket. Requests
// within the heap regime that find no fit grow the heap by exactly the size
// needed, so growth extensions are always exact-fit and never enter a
// bucket either.
//
// # Usage
//
//	h, err := segalloc.NewHeap(nil)
//	if err != nil {
//	    return err
//	}
//
//	p, err := h.Allocate(64)
//	if err != nil {
//	    return err
//	}
//	// ... use p ...
//	err = h.Release(p)
//
// # Collaborators
//
// NewHeap accepts a Config naming a HeapExtender and a PageMapper. Both are
// optional; a nil Config, or nil fields within one, get OS-backed defaults
// built on golang.org/x/sys/unix (see os_unix.go). Supplying custom
// implementations lets a caller run the allocator over pre-reserved memory,
// a test double, or a platform other than the built-in default targets.
//
// # Thread safety
//
// A Heap is not safe for concurrent use. Callers needing thread safety wrap
// the whole public API (Allocate, ZeroAllocate, Reallocate, Release) in one
// mutex.
package segalloc
