package primitives

import (
	"unsafe"

	heaperrors "github.com/orizon-lang/heapalloc/internal/errors"
)

// arena is a fixed-size, never-reclaimed backing buffer that HeapExtend
// grows into one chunk at a time: the in-process analogue of a monotonic
// sbrk break pointer. Adapted from this codebase's bump-pointer arena
// allocator; spans handed out here are never returned to Go's GC, matching
// the heap-growth primitive's own "never shrinks" contract.
type arena struct {
	buffer  []byte
	current uintptr
}

func newArena(size uintptr) (*arena, error) {
	if size == 0 {
		return nil, heaperrors.InvalidSize(size, "primitives.NewDefaultSource arena size")
	}

	return &arena{buffer: make([]byte, size)}, nil
}

// extend returns a pointer to the next n contiguous bytes of the arena, or
// an error if the arena is exhausted.
func (a *arena) extend(n uintptr) (unsafe.Pointer, error) {
	if a.current+n > uintptr(len(a.buffer)) {
		return nil, heaperrors.Exhausted("arena.extend", n, uintptr(len(a.buffer))-a.current)
	}

	p := unsafe.Pointer(&a.buffer[a.current])
	a.current += n

	return p, nil
}
