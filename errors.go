package segalloc

import "errors"

// Sentinel errors returned by the public allocator operations. Callers should
// use errors.Is to check for a specific failure rather than comparing values
// or messages directly.
var (
	// ErrInvalidArgument indicates a zero size, a zero count/elem size to
	// ZeroAllocate, or a nil pointer where one is prohibited.
	ErrInvalidArgument = errors.New("segalloc: invalid argument")

	// ErrSizeOverflow indicates a requested or computed size exceeds what
	// the block header can encode, or a multiplication overflowed.
	ErrSizeOverflow = errors.New("segalloc: size overflow")

	// ErrOutOfMemory indicates the heap extender or page mapper collaborator
	// failed to produce more address space. The heap remains fully usable
	// for subsequent smaller requests.
	ErrOutOfMemory = errors.New("segalloc: out of memory")

	// ErrInvalidPointer indicates a pointer passed to Release or Reallocate
	// does not lie within the heap and was never returned by this allocator.
	// Reallocate also returns it for a heap block that is already free.
	ErrInvalidPointer = errors.New("segalloc: invalid pointer")

	// ErrDoubleFree indicates a pointer's block header is already marked
	// free at the time Release was called.
	ErrDoubleFree = errors.New("segalloc: double free")
)
