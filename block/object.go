package block

import (
	"sync"
	"unsafe"
)

// ---------------------------------------------------------------------------
// ObjectModel: the host object model capability
// ---------------------------------------------------------------------------

// ObjectModel is the retain/release capability used for FieldIsObject
// captures. The runtime treats it as opaque; Retain returns the reference to
// store, which need not be the argument.
type ObjectModel interface {
	Retain(obj unsafe.Pointer) unsafe.Pointer
	Release(obj unsafe.Pointer)
}

// NopObjectModel ignores retain and release. The default when the host has
// no object lifetimes of its own to maintain.
type NopObjectModel struct{}

func (NopObjectModel) Retain(obj unsafe.Pointer) unsafe.Pointer { return obj }

func (NopObjectModel) Release(unsafe.Pointer) {}

// CountingObjectModel tracks per-reference retain balances. Test
// instrumentation for the field transfer protocol.
type CountingObjectModel struct {
	mu     sync.Mutex
	counts map[unsafe.Pointer]int
}

// NewCountingObjectModel returns an empty counting model.
func NewCountingObjectModel() *CountingObjectModel {
	return &CountingObjectModel{counts: make(map[unsafe.Pointer]int)}
}

func (m *CountingObjectModel) Retain(obj unsafe.Pointer) unsafe.Pointer {
	m.mu.Lock()
	m.counts[obj]++
	m.mu.Unlock()
	return obj
}

func (m *CountingObjectModel) Release(obj unsafe.Pointer) {
	m.mu.Lock()
	m.counts[obj]--
	m.mu.Unlock()
}

// Balance returns retains minus releases for obj.
func (m *CountingObjectModel) Balance(obj unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[obj]
}
