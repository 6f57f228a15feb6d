package block

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// ---------------------------------------------------------------------------
// Heap: the generic allocator capability
// ---------------------------------------------------------------------------

// Heap is the allocator used for promotion. Implementations must be safe to
// call from any thread. No alignment contract beyond natural word alignment.
type Heap interface {
	Allocate(size uintptr) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// GoHeap satisfies Heap with Go-allocated slabs pinned in a registry, so the
// collector cannot reclaim storage that is only reachable through unsafe
// pointers held by generated code.
type GoHeap struct {
	mu     sync.Mutex
	slabs  map[unsafe.Pointer][]byte
	poison bool
}

// NewGoHeap returns an empty heap.
func NewGoHeap() *GoHeap {
	return &GoHeap{slabs: make(map[unsafe.Pointer][]byte)}
}

// SetPoisonOnFree makes Free overwrite slabs with 0xDD before unpinning
// them, turning use-after-free into loud failures. Debug aid; off by
// default.
func (h *GoHeap) SetPoisonOnFree(on bool) {
	h.mu.Lock()
	h.poison = on
	h.mu.Unlock()
}

// Allocate returns a zeroed block of at least size bytes.
func (h *GoHeap) Allocate(size uintptr) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	slab := make([]byte, size)
	p := unsafe.Pointer(&slab[0])
	h.mu.Lock()
	h.slabs[p] = slab
	h.mu.Unlock()
	return p
}

// Free unpins a block previously returned by Allocate. Freeing a pointer
// the heap does not own is a programming-logic violation and panics.
func (h *GoHeap) Free(p unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	slab, ok := h.slabs[p]
	if !ok {
		panic("block: free of pointer not owned by heap")
	}
	if h.poison {
		for i := range slab {
			slab[i] = 0xDD
		}
	}
	delete(h.slabs, p)
}

// Live returns the number of blocks currently allocated.
func (h *GoHeap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.slabs)
}

// ---------------------------------------------------------------------------
// CountingHeap: call-count instrumentation
// ---------------------------------------------------------------------------

// CountingHeap wraps another Heap and counts Allocate/Free calls. Used by
// tests that assert storage is allocated and freed exactly once.
type CountingHeap struct {
	inner  Heap
	allocs atomic.Int64
	frees  atomic.Int64
}

// NewCountingHeap wraps inner; a nil inner wraps a fresh GoHeap.
func NewCountingHeap(inner Heap) *CountingHeap {
	if inner == nil {
		inner = NewGoHeap()
	}
	return &CountingHeap{inner: inner}
}

func (h *CountingHeap) Allocate(size uintptr) unsafe.Pointer {
	h.allocs.Add(1)
	return h.inner.Allocate(size)
}

func (h *CountingHeap) Free(p unsafe.Pointer) {
	h.frees.Add(1)
	h.inner.Free(p)
}

// Allocs returns the number of Allocate calls so far.
func (h *CountingHeap) Allocs() int64 { return h.allocs.Load() }

// Frees returns the number of Free calls so far.
func (h *CountingHeap) Frees() int64 { return h.frees.Load() }

// Outstanding returns allocations not yet freed.
func (h *CountingHeap) Outstanding() int64 { return h.allocs.Load() - h.frees.Load() }
