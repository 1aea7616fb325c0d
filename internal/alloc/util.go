package alloc

import (
	"math/bits"
	"unsafe"
)

// roundUpToEight mirrors the original source's (n/8 + 1) * 8, which
// overshoots exact multiples of 8 by a further 8 bytes (e.g. 16 -> 24).
// See SPEC_FULL.md open question 3.
func roundUpToEight(n uintptr) uintptr {
	return (n/8 + 1) * 8
}

// safeProduct returns count*size and true, or (0, false) if the product is
// zero or would overflow a uintptr. Its caller, AllocateZeroed, returns nil
// for a zero product and for an overflowing one alike, so the zero case is
// folded in here with the overflow check.
func safeProduct(count, size uintptr) (uintptr, bool) {
	if count == 0 || size == 0 {
		return 0, false
	}

	hi, lo := bits.Mul64(uint64(count), uint64(size))
	if hi != 0 {
		return 0, false
	}

	return uintptr(lo), true
}

func zero(p unsafe.Pointer, n uintptr) {
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = 0
	}
}
