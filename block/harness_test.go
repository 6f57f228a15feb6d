package block

import (
	"unsafe"
)

// ---------------------------------------------------------------------------
// Test harness: stand-ins for compiler-generated stack layouts
// ---------------------------------------------------------------------------

// newStackBlock lays out a stack-resident closure over a fresh buffer, the
// way generated code would inside a frame. The buffer stays alive for as
// long as the returned header pointer does.
func newStackBlock(desc *Descriptor, flags Flags) *Layout {
	buf := make([]byte, desc.Size)
	b := (*Layout)(unsafe.Pointer(&buf[0]))
	b.Class = StackBlockClass
	b.Flags = flags
	b.Descriptor = desc
	return b
}

// newStackByref lays out a stack-resident byref cell with extra payload
// bytes. The forwarding reference starts out self-pointing, as generated
// code initializes it.
func newStackByref(extra uintptr, flags Flags, keep ByrefKeep, dispose ByrefDispose) *Byref {
	buf := make([]byte, ByrefHeaderSize+extra)
	b := (*Byref)(unsafe.Pointer(&buf[0]))
	b.Class = StackByrefClass
	b.Forwarding = b
	b.Flags = flags
	b.Size = uint32(ByrefHeaderSize + extra)
	b.Keep = keep
	b.Dispose = dispose
	return b
}

// payloadWord returns the i-th pointer-sized slot after the closure header.
func payloadWord(p unsafe.Pointer, i uintptr) *unsafe.Pointer {
	return (*unsafe.Pointer)(unsafe.Add(p, HeaderSize+i*unsafe.Sizeof(uintptr(0))))
}
