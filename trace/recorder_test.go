package trace

import (
	"testing"
	"unsafe"

	"github.com/chazu/blockrt/block"
)

// runSession drives a short closure lifecycle through a recording runtime
// and returns the session.
func runSession(t *testing.T) Session {
	t.Helper()
	rec := NewRecorder()
	rt := block.NewWith(nil, nil, rec)

	desc := &block.Descriptor{Size: block.HeaderSize}
	buf := make([]byte, desc.Size)
	stack := (*block.Layout)(unsafe.Pointer(&buf[0]))
	stack.Class = block.StackBlockClass
	stack.Descriptor = desc

	promoted := rt.Copy(stack)
	rt.Copy(promoted)
	rt.Release(promoted)
	rt.Release(promoted)

	return rec.Snapshot()
}

func TestRecorderCapturesLifecycle(t *testing.T) {
	s := runSession(t)

	if s.ID == "" {
		t.Error("session has no ID")
	}
	want := []block.TraceEventKind{
		block.TraceBlockPromoted,
		block.TraceBlockRetained,
		block.TraceBlockReleased,
		block.TraceBlockReleased,
		block.TraceBlockFreed,
	}
	if len(s.Events) != len(want) {
		t.Fatalf("recorded %d events, want %d", len(s.Events), len(want))
	}
	for i, e := range s.Events {
		if block.TraceEventKind(e.Kind) != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.KindString(), want[i])
		}
		if e.Seq != uint64(i+1) {
			t.Errorf("event %d has seq %d", i, e.Seq)
		}
	}
}

func TestRecorderCapacityDropsNotBlocks(t *testing.T) {
	rec := NewRecorderWithCapacity(2)
	rt := block.NewWith(nil, nil, rec)

	desc := &block.Descriptor{Size: block.HeaderSize}
	buf := make([]byte, desc.Size)
	stack := (*block.Layout)(unsafe.Pointer(&buf[0]))
	stack.Class = block.StackBlockClass
	stack.Descriptor = desc

	promoted := rt.Copy(stack) // 1 event
	rt.Copy(promoted)          // 2 events
	rt.Release(promoted)       // dropped
	rt.Release(promoted)       // dropped (release + free)

	s := rec.Snapshot()
	if len(s.Events) != 2 {
		t.Errorf("buffered %d events, want 2", len(s.Events))
	}
	if s.Dropped != 3 {
		t.Errorf("dropped = %d, want 3", s.Dropped)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	rec := NewRecorder()
	rec.TraceEvent(block.TraceBlockPromoted, nil, 1, 8)

	s := rec.Snapshot()
	s.Events[0].Refcount = 99

	if rec.Snapshot().Events[0].Refcount == 99 {
		t.Error("snapshot aliases the recorder's buffer")
	}
}
