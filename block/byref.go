package block

import (
	"sync/atomic"
	"unsafe"
)

// ---------------------------------------------------------------------------
// Byref cells: shared mutable captures
// ---------------------------------------------------------------------------

// ByrefKeep deep-copies a cell's payload from src into dst during
// promotion. Generated per cell type; relays inner fields through
// AssignField with the ByrefCaller modifier.
type ByrefKeep func(dst, src *Byref)

// ByrefDispose tears down a cell's payload. Generated per cell type.
type ByrefDispose func(cell *Byref)

// Byref is the header of a mutably-captured variable cell. The captured
// variable's storage follows the header, within the Size bytes the whole
// cell occupies.
//
// Exactly one authoritative instance exists per originating variable at any
// time: Forwarding always resolves to it. A stack-resident cell points at
// itself; promotion repoints it (and only it) at the heap copy via a single
// compare-and-swap, which is the sole arbiter when several threads race to
// promote the same cell.
//
// Flags packs the atomic reference count into the low 24 bits (see
// RefcountMask). While stack-resident the count bits are zero, meaning "not
// yet promoted"; after promotion they count holders.
type Byref struct {
	Class      *Class
	Forwarding *Byref
	Flags      Flags
	Size       uint32
	Keep       ByrefKeep
	Dispose    ByrefDispose
}

// ByrefHeaderSize is the byte size of the Byref header. A cell whose Size
// does not reach past it carries no payload worth a helper call.
const ByrefHeaderSize = unsafe.Sizeof(Byref{})

// Payload returns a pointer to the captured variable's storage.
func (b *Byref) Payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), ByrefHeaderSize)
}

// RefCount returns the current holder count. Zero means the cell has never
// been promoted.
func (b *Byref) RefCount() int32 {
	return refcountBits(b.flagsWord())
}

func (b *Byref) flagsWord() *uint32 {
	return (*uint32)(unsafe.Pointer(&b.Flags))
}

func (b *Byref) loadForwarding() *Byref {
	return (*Byref)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&b.Forwarding))))
}

func (b *Byref) casForwarding(old, new *Byref) bool {
	return atomic.CompareAndSwapPointer(
		(*unsafe.Pointer)(unsafe.Pointer(&b.Forwarding)),
		unsafe.Pointer(old), unsafe.Pointer(new))
}

// hasHelpers reports whether the cell carries a nontrivial payload that the
// generated keep/dispose helpers must handle.
func (b *Byref) hasHelpers() bool {
	return b.Flags&HasCopyDispose != 0 && uintptr(b.Size) >= ByrefHeaderSize
}

// copyByref acquires one more reference to the authoritative instance of
// cell, promoting it to the heap first if no promotion has happened yet.
//
// The promotion race is resolved by the compare-and-swap on the original
// cell's forwarding reference: at most one thread's speculative copy becomes
// authoritative, and losers pay only the cost of allocate+copy+free.
func (rt *Runtime) copyByref(cell *Byref) *Byref {
	fwd := cell.loadForwarding()
	if refcountBits(fwd.flagsWord()) == 0 {
		// Still stack-resident. Build a speculative heap copy.
		size := uintptr(cell.Size)
		p := rt.heap.Allocate(size)
		copyBytes(p, unsafe.Pointer(cell), size)

		promoted := (*Byref)(p)
		promoted.Class = MallocByrefClass
		// One count for the heap copy itself, one for the promoting
		// frame. Not yet published, so a plain add suffices.
		promoted.Flags += 2
		if cell.hasHelpers() && cell.Keep != nil {
			cell.Keep(promoted, cell)
		}
		promoted.Forwarding = promoted

		if cell.casForwarding(fwd, promoted) {
			rt.trace(TraceByrefPromoted, p, 2, size)
			return promoted
		}

		// Another thread promoted concurrently. Discard the
		// speculative copy and adopt the winner's.
		if promoted.hasHelpers() && promoted.Dispose != nil {
			promoted.Dispose(promoted)
		}
		rt.heap.Free(p)
		return cell.loadForwarding()
	}

	// Already promoted: one more holder.
	n := latchingIncr(fwd.flagsWord())
	rt.trace(TraceByrefRetained, unsafe.Pointer(fwd), n, uintptr(fwd.Size))
	return fwd
}

// releaseByref drops one reference to cell. Heap-promoted cells are
// reference counted; the last holder runs the dispose helper and frees the
// storage. A stack-resident cell is torn down in place, then — if it was
// promoted at some point — the creating frame's count on the heap copy is
// dropped through the forwarding reference.
//
// viaRelay marks a call recursed from the stack-resident relay; it never
// re-runs the stack-side teardown, which keeps the recursion finite and the
// dispatch single.
func (rt *Runtime) releaseByref(cell *Byref, viaRelay bool) {
	if cell == nil {
		return
	}
	if cell.Class == MallocByrefClass {
		count, latched := latchingDecr(cell.flagsWord())
		if latched {
			// Count already at zero: double-free guard.
			return
		}
		rt.trace(TraceByrefReleased, unsafe.Pointer(cell), count, uintptr(cell.Size))
		if count == 0 {
			if cell.Dispose != nil {
				cell.Dispose(cell)
			}
			size := uintptr(cell.Size)
			rt.heap.Free(unsafe.Pointer(cell))
			rt.trace(TraceByrefFreed, unsafe.Pointer(cell), 0, size)
		}
		return
	}

	// Stack-resident instance.
	if viaRelay {
		return
	}
	if cell.hasHelpers() && cell.Dispose != nil {
		// In-place destructor for the frame's own copy of the payload.
		cell.Dispose(cell)
	}
	if fwd := cell.loadForwarding(); fwd != cell {
		rt.releaseByref(fwd, true)
	}
}
