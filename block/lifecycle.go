package block

import (
	"sync/atomic"
	"unsafe"
)

// ---------------------------------------------------------------------------
// Closure lifecycle: promotion and release
// ---------------------------------------------------------------------------

// Copy returns an owning reference to b that survives the creating scope.
//
// Global closures are immortal and returned unchanged. A stack-resident
// closure (Reserved == 0) is promoted: a heap block of the descriptor's
// declared size is allocated, the instance's bytes are copied wholesale, and
// the descriptor's copy helper — when the flags say one exists — deep-copies
// every captured field through the field transfer protocol. An
// already-promoted closure simply gains one more owner.
//
// First promotion assumes the originating stack frame is the only party
// copying that particular stack instance; the count update on the shared
// heap path is atomic, so concurrent copies of an already-promoted closure
// are safe.
func (rt *Runtime) Copy(b *Layout) *Layout {
	if b == nil {
		return nil
	}
	if b.isGlobal() {
		return b
	}
	if atomic.LoadInt32(&b.Reserved) > 0 {
		n := atomic.AddInt32(&b.Reserved, 1)
		rt.trace(TraceBlockRetained, unsafe.Pointer(b), n, b.Descriptor.Size)
		return b
	}

	// Never promoted: make the heap copy.
	size := b.Descriptor.Size
	p := rt.heap.Allocate(size)
	copyBytes(p, unsafe.Pointer(b), size)

	heapBlock := (*Layout)(p)
	heapBlock.Class = MallocBlockClass
	heapBlock.Reserved = 0
	if b.Flags&HasCopyDispose != 0 && b.Descriptor.Copy != nil {
		b.Descriptor.Copy(p, unsafe.Pointer(b))
	}
	n := atomic.AddInt32(&heapBlock.Reserved, 1)
	rt.trace(TraceBlockPromoted, p, n, size)
	return heapBlock
}

// Release drops one owning reference to b. The last release runs the
// descriptor's dispose helper — when the flags say one exists — and frees
// the storage.
//
// Global closures and stack-resident instances are no-ops: the former are
// immortal, the latter are released implicitly when their frame exits.
func (rt *Runtime) Release(b *Layout) {
	if b == nil || b.isGlobal() {
		return
	}
	if atomic.LoadInt32(&b.Reserved) <= 0 {
		return
	}
	n := atomic.AddInt32(&b.Reserved, -1)
	size := b.Descriptor.Size
	rt.trace(TraceBlockReleased, unsafe.Pointer(b), n, size)
	if n == 0 {
		if b.Flags&HasCopyDispose != 0 && b.Descriptor.Dispose != nil {
			b.Descriptor.Dispose(unsafe.Pointer(b))
		}
		rt.heap.Free(unsafe.Pointer(b))
		rt.trace(TraceBlockFreed, unsafe.Pointer(b), 0, size)
	}
}
