package block

import (
	"unsafe"
)

// ---------------------------------------------------------------------------
// Runtime: capability wiring
// ---------------------------------------------------------------------------

// TraceEventKind identifies one observable runtime action.
type TraceEventKind uint8

const (
	TraceBlockPromoted TraceEventKind = iota + 1
	TraceBlockRetained
	TraceBlockReleased
	TraceBlockFreed
	TraceByrefPromoted
	TraceByrefRetained
	TraceByrefReleased
	TraceByrefFreed
)

func (k TraceEventKind) String() string {
	switch k {
	case TraceBlockPromoted:
		return "block-promoted"
	case TraceBlockRetained:
		return "block-retained"
	case TraceBlockReleased:
		return "block-released"
	case TraceBlockFreed:
		return "block-freed"
	case TraceByrefPromoted:
		return "byref-promoted"
	case TraceByrefRetained:
		return "byref-retained"
	case TraceByrefReleased:
		return "byref-released"
	case TraceByrefFreed:
		return "byref-freed"
	default:
		return "unknown"
	}
}

// Tracer observes runtime actions. Implementations must be safe for
// concurrent use; the runtime calls them synchronously from whatever thread
// performed the action.
type Tracer interface {
	TraceEvent(kind TraceEventKind, addr unsafe.Pointer, refcount int32, size uintptr)
}

// Runtime ties together the allocator, the host object model, and an
// optional tracer. A zero-configured Runtime (from New) uses a private
// GoHeap and ignores object retain/release.
type Runtime struct {
	heap    Heap
	objects ObjectModel
	tracer  Tracer
}

// New returns a Runtime backed by a fresh GoHeap and a no-op object model.
func New() *Runtime {
	return NewWith(nil, nil, nil)
}

// NewWith lets the caller supply the heap, object model, and tracer. Nil
// arguments select the defaults (nil tracer means no tracing and costs
// nothing).
func NewWith(heap Heap, objects ObjectModel, tracer Tracer) *Runtime {
	if heap == nil {
		heap = NewGoHeap()
	}
	if objects == nil {
		objects = NopObjectModel{}
	}
	return &Runtime{heap: heap, objects: objects, tracer: tracer}
}

// Heap returns the runtime's allocator.
func (rt *Runtime) Heap() Heap { return rt.heap }

func (rt *Runtime) trace(kind TraceEventKind, addr unsafe.Pointer, refcount int32, size uintptr) {
	if rt.tracer != nil {
		rt.tracer.TraceEvent(kind, addr, refcount, size)
	}
}
