package block

import (
	"testing"
	"unsafe"
)

func TestGoHeapAllocateFree(t *testing.T) {
	h := NewGoHeap()

	p := h.Allocate(64)
	if p == nil {
		t.Fatal("Allocate returned nil")
	}
	if h.Live() != 1 {
		t.Errorf("Live = %d, want 1", h.Live())
	}

	// Fresh blocks are zeroed.
	for i, b := range unsafe.Slice((*byte)(p), 64) {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}

	h.Free(p)
	if h.Live() != 0 {
		t.Errorf("Live after free = %d, want 0", h.Live())
	}
}

func TestGoHeapZeroSizeAllocation(t *testing.T) {
	h := NewGoHeap()
	p := h.Allocate(0)
	if p == nil {
		t.Fatal("zero-size Allocate returned nil")
	}
	h.Free(p)
}

func TestGoHeapFreeUnownedPanics(t *testing.T) {
	h := NewGoHeap()
	defer func() {
		if recover() == nil {
			t.Error("expected panic freeing unowned pointer")
		}
	}()
	h.Free(unsafe.Pointer(new(int)))
}

func TestGoHeapPoisonOnFree(t *testing.T) {
	h := NewGoHeap()
	h.SetPoisonOnFree(true)

	p := h.Allocate(16)
	slab := unsafe.Slice((*byte)(p), 16)
	h.Free(p)
	for i, b := range slab {
		if b != 0xDD {
			t.Fatalf("byte %d = %#x after poisoned free, want 0xDD", i, b)
		}
	}
}

func TestCountingHeap(t *testing.T) {
	h := NewCountingHeap(nil)

	p1 := h.Allocate(8)
	p2 := h.Allocate(8)
	h.Free(p1)

	if h.Allocs() != 2 || h.Frees() != 1 || h.Outstanding() != 1 {
		t.Errorf("allocs=%d frees=%d outstanding=%d, want 2/1/1",
			h.Allocs(), h.Frees(), h.Outstanding())
	}
	h.Free(p2)
}
