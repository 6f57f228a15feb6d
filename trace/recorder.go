// Package trace records closure runtime events (promotions, retains,
// releases, frees) for offline inspection. A Recorder plugs into the block
// runtime as its Tracer; sessions can be serialized to CBOR or persisted to
// SQLite and inspected with the blockdump tool.
package trace

import (
	"sync"
	"time"
	"unsafe"

	"github.com/google/uuid"

	"github.com/chazu/blockrt/block"
)

// Event is one recorded runtime action.
type Event struct {
	Seq      uint64 `cbor:"1,keyasint"`
	Kind     uint8  `cbor:"2,keyasint"`
	Addr     uint64 `cbor:"3,keyasint"`
	Refcount int32  `cbor:"4,keyasint"`
	Size     uint64 `cbor:"5,keyasint"`
	UnixNano int64  `cbor:"6,keyasint"`
}

// KindString returns the event kind's runtime name.
func (e Event) KindString() string {
	return block.TraceEventKind(e.Kind).String()
}

// Session groups the events recorded by one Recorder, identified by a UUID.
type Session struct {
	ID      string  `cbor:"1,keyasint"`
	Started int64   `cbor:"2,keyasint"`
	Events  []Event `cbor:"3,keyasint,omitempty"`
	Dropped uint64  `cbor:"4,keyasint,omitempty"` // events lost to the capacity cap
}

// Recorder buffers runtime events in memory. It satisfies block.Tracer and
// is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	session  Session
	seq      uint64
	capacity int // 0 = unbounded
}

// NewRecorder returns an unbounded Recorder with a fresh session ID.
func NewRecorder() *Recorder {
	return NewRecorderWithCapacity(0)
}

// NewRecorderWithCapacity returns a Recorder that keeps at most capacity
// events; once full, further events are counted as dropped rather than
// stored. capacity <= 0 means unbounded.
func NewRecorderWithCapacity(capacity int) *Recorder {
	return &Recorder{
		session: Session{
			ID:      uuid.NewString(),
			Started: time.Now().UnixNano(),
		},
		capacity: capacity,
	}
}

// TraceEvent implements block.Tracer.
func (r *Recorder) TraceEvent(kind block.TraceEventKind, addr unsafe.Pointer, refcount int32, size uintptr) {
	now := time.Now().UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.capacity > 0 && len(r.session.Events) >= r.capacity {
		r.session.Dropped++
		return
	}
	r.session.Events = append(r.session.Events, Event{
		Seq:      r.seq,
		Kind:     uint8(kind),
		Addr:     uint64(uintptr(addr)),
		Refcount: refcount,
		Size:     uint64(size),
		UnixNano: now,
	})
}

// SessionID returns the recorder's session UUID.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.ID
}

// Snapshot returns a copy of the session recorded so far.
func (r *Recorder) Snapshot() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session
	s.Events = make([]Event, len(r.session.Events))
	copy(s.Events, r.session.Events)
	return s
}

// Len returns the number of buffered events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.session.Events)
}
