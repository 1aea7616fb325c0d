//go:build unix

package primitives

import (
	"unsafe"

	"golang.org/x/sys/unix"

	heaperrors "github.com/orizon-lang/heapalloc/internal/errors"
)

// mmapBulk backs the bulk allocation pair with real mmap/munmap syscalls.
// Unlike the pool arena, bulk regions are independent OS mappings that can
// genuinely be returned to the kernel on release.
type mmapBulk struct{}

func newBulkBackend() bulkBackend { return mmapBulk{} }

func (mmapBulk) allocate(n uintptr) (unsafe.Pointer, error) {
	b, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, heaperrors.SystemFailure("mmapBulk.allocate", err)
	}

	return unsafe.Pointer(&b[0]), nil
}

func (mmapBulk) release(ptr unsafe.Pointer, n uintptr) error {
	b := unsafe.Slice((*byte)(ptr), n)
	if err := unix.Munmap(b); err != nil {
		return heaperrors.SystemFailure("mmapBulk.release", err)
	}

	return nil
}
