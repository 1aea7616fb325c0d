package alloc

import (
	"errors"
	"testing"
	"unsafe"

	"go.uber.org/mock/gomock"

	"github.com/orizon-lang/heapalloc/mocks"
)

var errTestExhausted = errors.New("test: primitive exhausted")

func TestAllocateZero(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	if p := a.Allocate(0); p != nil {
		t.Error("allocate(0) should return nil")
	}
}

func TestAllocateZeroedZeroArgs(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	if p := a.AllocateZeroed(0, 8); p != nil {
		t.Error("allocate_zeroed(0, 8) should return nil")
	}
	if p := a.AllocateZeroed(8, 0); p != nil {
		t.Error("allocate_zeroed(8, 0) should return nil")
	}
}

func TestAllocateZeroedOverflow(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	const maxUintptr = ^uintptr(0)

	if p := a.AllocateZeroed(maxUintptr, 2); p != nil {
		t.Error("allocate_zeroed overflow should return nil")
	}
}

func TestAllocateZeroedZeroesExactlyRoundedSize(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.AllocateZeroed(4, 10)
	if p == nil {
		t.Fatal("allocate_zeroed(4, 10) returned nil")
	}

	r := roundUpToEight(40)
	got := unsafe.Slice((*byte)(p), r)
	for i, b := range got {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, b)
		}
	}
}

func TestHeaderIntegrity(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	sizes := []uintptr{1, 8, 16, 100, 1000, 4089}
	for _, n := range sizes {
		p := a.Allocate(n)
		if p == nil {
			t.Fatalf("allocate(%d) returned nil", n)
		}

		h := headerAt(blockBase(p))
		if h.size()&0x1F != 0 {
			t.Errorf("allocate(%d): size %d not 32-byte aligned", n, h.size())
		}
		if h.isFree() {
			t.Errorf("allocate(%d): allocated bit not set", n)
		}
		if h.size() < n+HeaderSize {
			t.Errorf("allocate(%d): total_size %d < requested+H", n, h.size())
		}
	}
}

func TestResizeFastPathSameClass(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.Allocate(100) // class 2, total 128
	if p == nil {
		t.Fatal("allocate(100) returned nil")
	}

	data := unsafe.Slice((*byte)(p), 100)
	for i := range data {
		data[i] = byte(i)
	}

	// s-H-1 = 119 rounds to 120, the block's usable size.
	q := a.Resize(p, 119)
	if q != p {
		t.Errorf("resize within class should return same pointer: got %p, want %p", q, p)
	}

	after := unsafe.Slice((*byte)(q), 100)
	for i, b := range after {
		if b != byte(i) {
			t.Fatalf("byte %d changed across in-class resize: got %d, want %d", i, b, byte(i))
		}
	}
}

func TestScenarioE_ResizeShrinkInClass(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.Allocate(100)
	if p == nil {
		t.Fatal("allocate(100) returned nil")
	}

	h := headerAt(blockBase(p))
	if h.size() != 128 {
		t.Fatalf("allocate(100) total_size = %d, want 128", h.size())
	}

	data := unsafe.Slice((*byte)(p), 100)
	for i := range data {
		data[i] = byte(i)
	}

	// roundUpToEight(119) = 120 stays in class 2; 120 itself would round to
	// 128 and need class 3.
	q := a.Resize(p, 119)
	if q != p {
		t.Errorf("resize(p, 119) should return p unchanged, got different pointer")
	}
}

func TestScenarioF_ResizeGrowCrossClass(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.Allocate(100)
	if p == nil {
		t.Fatal("allocate(100) returned nil")
	}

	data := unsafe.Slice((*byte)(p), 100)
	for i := range data {
		data[i] = byte(i)
	}

	q := a.Resize(p, 200)
	if q == nil {
		t.Fatal("resize(p, 200) returned nil")
	}

	grown := unsafe.Slice((*byte)(q), 100)
	for i, b := range grown {
		if b != byte(i) {
			t.Fatalf("byte %d lost across cross-class resize: got %d, want %d", i, b, byte(i))
		}
	}
}

func TestResizeNilActsLikeAllocate(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.Resize(nil, 32)
	if p == nil {
		t.Fatal("resize(nil, 32) returned nil")
	}
}

func TestResizeToZeroActsLikeRelease(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.Allocate(32)
	if p == nil {
		t.Fatal("allocate(32) returned nil")
	}

	q := a.Resize(p, 0)
	if q != nil {
		t.Error("resize(p, 0) should return nil")
	}

	h := headerAt(blockBase(p))
	if !h.isFree() {
		t.Error("resize(p, 0) should have released p")
	}
}

func TestResizeBulkToBulk(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p := a.Allocate(5000)
	if p == nil {
		t.Fatal("allocate(5000) returned nil")
	}

	data := unsafe.Slice((*byte)(p), 5000)
	for i := range data {
		data[i] = byte(i % 251)
	}

	q := a.Resize(p, 6000)
	if q == nil {
		t.Fatal("resize to larger bulk size returned nil")
	}

	grown := unsafe.Slice((*byte)(q), 5000)
	for i, b := range grown {
		if b != byte(i%251) {
			t.Fatalf("byte %d lost across bulk resize: got %d, want %d", i, b, byte(i%251))
		}
	}
}

func TestReleaseNilIsNoOp(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	a.Release(nil) // must not panic
}

func TestHeapExhaustionReturnsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	src.EXPECT().HeapExtend(uintptr(ChunkSize)).Return(nil, errTestExhausted).AnyTimes()

	a := New(src, nil)

	if p := a.Allocate(16); p != nil {
		t.Error("allocate(16) against an exhausted source should return nil")
	}
}

func TestBulkAllocateFailureReturnsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	table := make([]byte, ChunkSize)
	src.EXPECT().HeapExtend(uintptr(ChunkSize)).Return(unsafe.Pointer(&table[0]), nil).AnyTimes()
	src.EXPECT().BulkAllocate(gomock.Any()).Return(nil, errTestExhausted)

	a := New(src, nil)

	if p := a.Allocate(5000); p != nil {
		t.Error("allocate(5000) with a failing bulk backend should return nil")
	}
}
