package block

import (
	"unsafe"
)

// ---------------------------------------------------------------------------
// Field transfer protocol
// ---------------------------------------------------------------------------

// AssignField transfers one captured field from src into *dst, dispatched
// on kind. Generated copy helpers call it once per nontrivial field.
//
//   - FieldIsObject: retain src through the object model, store the result.
//   - FieldIsBlock: deep-copy the nested closure via Copy, store the copy.
//   - FieldIsByref: acquire the cell's authoritative instance, store it.
//
// The ByrefCaller modifier marks a relay from a byref cell's own keep
// helper: the word is stored as-is, with no ownership side effect, so the
// payload is not double-retained. FieldIsWeak is accepted and ignored (weak
// capture is intentionally unimplemented). Any other kind word does nothing;
// malformed flags are a silent no-op, not a validated contract.
func (rt *Runtime) AssignField(dst *unsafe.Pointer, src unsafe.Pointer, kind FieldKind) {
	if kind&ByrefCaller != 0 {
		*dst = src
		return
	}
	switch kind &^ FieldIsWeak {
	case FieldIsObject:
		*dst = rt.objects.Retain(src)
	case FieldIsBlock:
		*dst = unsafe.Pointer(rt.Copy((*Layout)(src)))
	case FieldIsByref:
		*dst = unsafe.Pointer(rt.copyByref((*Byref)(src)))
	}
}

// DisposeField is the mirror of AssignField, called by generated dispose
// helpers once per nontrivial field: it releases an object, releases a
// nested closure, or drops a byref cell reference. A kind carrying the
// ByrefCaller modifier came from a byref cell's own helper and owns no
// object or closure reference, so only the byref case still dispatches
// (with the relay marker). Malformed kind words do nothing.
func (rt *Runtime) DisposeField(field unsafe.Pointer, kind FieldKind) {
	switch {
	case kind&FieldIsByref != 0:
		rt.releaseByref((*Byref)(field), kind&ByrefCaller != 0)
	case kind&(FieldIsBlock|ByrefCaller) == FieldIsBlock:
		rt.Release((*Layout)(field))
	case kind&(FieldIsObject|ByrefCaller) == FieldIsObject:
		rt.objects.Release(field)
	}
}
