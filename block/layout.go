package block

import (
	"unsafe"
)

// ---------------------------------------------------------------------------
// Closure object layout
// ---------------------------------------------------------------------------

// Class is the type-identity slot of a closure or byref cell. Identity is
// by pointer equality with one of the package sentinels below, the same way
// generated code tells a stack-resident instance from a promoted one.
type Class struct {
	name string
}

func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}
	return c.name
}

// Identity sentinels. Generated code stamps stack instances with the stack
// sentinels at creation; this runtime stamps promoted copies with the malloc
// sentinels.
var (
	StackBlockClass  = &Class{name: "StackBlock"}
	MallocBlockClass = &Class{name: "MallocBlock"}
	GlobalBlockClass = &Class{name: "GlobalBlock"}

	StackByrefClass  = &Class{name: "StackByref"}
	MallocByrefClass = &Class{name: "MallocByref"}
)

// Invoke is a closure entry point. The runtime never calls it; it is copied
// wholesale during promotion and is otherwise opaque. Generated code is free
// to store any func value here and cast at the call site.
type Invoke func(self unsafe.Pointer)

// Layout is the closure object header. Generated code lays out captured
// field slots immediately after it, within the Descriptor.Size bytes that
// the whole object occupies. The runtime copies those trailing bytes
// wholesale and otherwise leaves them to the generated helpers.
//
// Reserved is the reference count. It is meaningful only on heap-resident
// copies (Reserved > 0); a stack-resident original that has never been
// copied carries zero.
type Layout struct {
	Class      *Class
	Flags      Flags
	Reserved   int32
	Invoke     Invoke
	Descriptor *Descriptor
}

// HeaderSize is the byte size of the closure header. Captured field slots
// start at this offset.
const HeaderSize = unsafe.Sizeof(Layout{})

// Payload returns a pointer to the first captured field slot.
func (b *Layout) Payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), HeaderSize)
}

// isGlobal reports whether the closure is a static/global instance, which
// is immortal and exempt from promotion and reference counting.
func (b *Layout) isGlobal() bool {
	return b.Class == GlobalBlockClass || b.Flags&IsGlobal != 0
}

// copyBytes moves n bytes from src to dst. Used for the wholesale transfer
// of an instance's storage during promotion.
func copyBytes(dst, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
