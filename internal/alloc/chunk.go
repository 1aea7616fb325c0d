package alloc

import (
	"unsafe"

	"github.com/orizon-lang/heapalloc/internal/primitives"
)

// freeListTable is the segregated free-list head array, one entry per size
// class. It lives inside the first chunk ever acquired from the heap
// source; each entry is the absolute address of the head block of that
// class's list, or 0 for an empty list.
type freeListTable struct {
	heads [numSizeClasses]uintptr
}

// chunkProvider grows the process heap one ChunkSize span at a time and
// bootstraps the free-list table from the first chunk it acquires. Every
// chunk after the first is handed to the Pool Manager untyped, to be split.
type chunkProvider struct {
	source primitives.Source
	table  *freeListTable
}

func newChunkProvider(source primitives.Source) *chunkProvider {
	return &chunkProvider{source: source}
}

// ensureTable lazily acquires the first chunk and reinterprets it as the
// free-list table. Returns false if the underlying source is exhausted.
func (cp *chunkProvider) ensureTable() bool {
	if cp.table != nil {
		return true
	}

	base, err := cp.source.HeapExtend(ChunkSize)
	if err != nil || base == nil {
		return false
	}

	cp.table = (*freeListTable)(base)
	*cp.table = freeListTable{}

	return true
}

// acquireChunk obtains a fresh, untyped ChunkSize span for the Pool Manager
// to split. Returns nil on exhaustion.
func (cp *chunkProvider) acquireChunk() unsafe.Pointer {
	base, err := cp.source.HeapExtend(ChunkSize)
	if err != nil {
		return nil
	}

	return base
}
