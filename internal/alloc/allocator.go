package alloc

import (
	"unsafe"

	"github.com/orizon-lang/heapalloc/internal/diag"
	"github.com/orizon-lang/heapalloc/internal/primitives"
)

// Allocator is the public surface: Allocate, AllocateZeroed, Resize, and
// Release. It classifies a request as pool- or bulk-eligible and
// dispatches to the Pool Manager or to the source's bulk primitives,
// handling copy-on-resize between the two.
//
// A single Allocator is not safe for concurrent use by design — run one per
// goroutine if independent allocators are needed (see cmd/heapalloc-bench).
type Allocator struct {
	source primitives.Source
	chunks *chunkProvider
	pool   *poolManager
	debug  *diag.Flag
}

// New creates an Allocator backed by source. debug may be nil, in which
// case diagnostic trace writes are always disabled.
func New(source primitives.Source, debug *diag.Flag) *Allocator {
	chunks := newChunkProvider(source)

	return &Allocator{
		source: source,
		chunks: chunks,
		pool:   newPoolManager(chunks),
		debug:  debug,
	}
}

// Allocate returns a pointer to at least n usable bytes, or nil if n is 0
// or the request cannot be satisfied.
func (a *Allocator) Allocate(n uintptr) unsafe.Pointer {
	if n == 0 {
		return nil
	}
	if !a.chunks.ensureTable() {
		return nil
	}

	r := roundUpToEight(n)
	a.trace("allocate", n, r)

	return a.allocateRounded(r)
}

// allocateRounded dispatches an already-rounded payload size to the Pool
// Manager or the bulk path. Resize reuses this directly, since its target
// size is rounded once up front and must not be rounded again.
func (a *Allocator) allocateRounded(r uintptr) unsafe.Pointer {
	if r <= maxPoolPayload {
		return a.pool.allocate(r)
	}

	return a.allocateBulk(r)
}

func (a *Allocator) allocateBulk(r uintptr) unsafe.Pointer {
	// Round the total up to the header codec's 32-byte granularity so the
	// low flag bits of the stored size are clear and size() reads it back
	// exactly (and BulkRelease later receives the same length).
	total := (r + HeaderSize + headerFlagMask) &^ headerFlagMask

	base, err := a.source.BulkAllocate(total)
	if err != nil || base == nil {
		return nil
	}

	*headerAt(base) = encodeHeader(total, true)

	return payloadOf(base)
}

// AllocateZeroed returns a pointer to count*size zeroed bytes, or nil on
// failure, on overflow, or if either argument is 0.
func (a *Allocator) AllocateZeroed(count, size uintptr) unsafe.Pointer {
	total, ok := safeProduct(count, size)
	if !ok {
		return nil
	}

	p := a.Allocate(total)
	if p == nil {
		return nil
	}

	zero(p, roundUpToEight(total))

	return p
}

// Resize grows or shrinks the allocation at p to n bytes, preserving the
// leading min(old, new) bytes of content. p == nil behaves like Allocate;
// n == 0 behaves like Release and returns nil.
func (a *Allocator) Resize(p unsafe.Pointer, n uintptr) unsafe.Pointer {
	if p == nil {
		return a.Allocate(n)
	}

	if n == 0 {
		a.Release(p)
		return nil
	}
	r := roundUpToEight(n)

	base := blockBase(p)
	s := headerAt(base).size()
	u := s - HeaderSize

	if r == u {
		return p
	}
	if s <= ChunkSize && r <= maxPoolPayload && classOf(r) == classOf(u) {
		return p
	}
	if s <= ChunkSize {
		return a.resizeFromPool(p, u, r)
	}

	return a.resizeFromBulk(p, u, r)
}

// resizeFromPool stages the old payload on the stack before releasing it,
// because release immediately puts the block back on a free list that the
// following Allocate call may reissue before the copy would otherwise
// happen.
func (a *Allocator) resizeFromPool(p unsafe.Pointer, u, r uintptr) unsafe.Pointer {
	var staging [ChunkSize]byte

	n := u
	if n > ChunkSize {
		n = ChunkSize
	}
	copy(staging[:n], unsafe.Slice((*byte)(p), n))

	a.Release(p)

	np := a.allocateRounded(r)
	if np == nil {
		return nil
	}

	copyLen := n
	if r < copyLen {
		copyLen = r
	}
	copy(unsafe.Slice((*byte)(np), copyLen), staging[:copyLen])

	return np
}

func (a *Allocator) resizeFromBulk(p unsafe.Pointer, u, r uintptr) unsafe.Pointer {
	np := a.allocateRounded(r)
	if np == nil {
		return nil
	}

	copyLen := u
	if r < copyLen {
		copyLen = r
	}
	copy(unsafe.Slice((*byte)(np), copyLen), unsafe.Slice((*byte)(p), copyLen))

	a.Release(p)

	return np
}

// Release returns the block at p to its owning allocator. Releasing nil or
// an already-free block is a silent no-op.
func (a *Allocator) Release(p unsafe.Pointer) {
	if p == nil {
		return
	}

	base := blockBase(p)
	h := headerAt(base)
	if h.isFree() {
		return
	}
	h.setFree()

	s := h.size()
	a.trace("release", s, 0)

	if s <= ChunkSize {
		a.pool.reclaim(base, s)
		return
	}

	_ = a.source.BulkRelease(base, s)
}

func (a *Allocator) trace(op string, n, r uintptr) {
	if a.debug == nil || !a.debug.Enabled() {
		return
	}

	diag.Tracef("%s size=%d rounded=%d", op, n, r)
}
