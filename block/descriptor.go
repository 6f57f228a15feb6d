package block

import (
	"unsafe"
)

// ---------------------------------------------------------------------------
// Descriptor: externally-owned closure metadata
// ---------------------------------------------------------------------------

// CopyHelper deep-copies the captured fields of a promoted closure. It must
// call AssignField once per nontrivial captured field, reading from src and
// writing into dst.
type CopyHelper func(dst, src unsafe.Pointer)

// DisposeHelper releases the captured fields of a dying closure. It must
// call DisposeField once per nontrivial captured field.
type DisposeHelper func(b unsafe.Pointer)

// Descriptor describes one closure type. Descriptors are immutable, shared
// between every instance of the closure, and owned by generated code — the
// runtime never frees one.
//
// Copy, Dispose, and Signature are meaningful only when the corresponding
// flag bit (HasCopyDispose, HasSignature) is set on the instance; the
// runtime never consults them otherwise.
type Descriptor struct {
	Reserved  uintptr
	Size      uintptr // total instance size, header plus captured fields
	Copy      CopyHelper
	Dispose   DisposeHelper
	Signature string
}
