package block

import (
	"testing"
	"unsafe"
)

func BenchmarkCopyReleasePromoted(b *testing.B) {
	rt := New()
	desc := &Descriptor{Size: HeaderSize}
	promoted := rt.Copy(newStackBlock(desc, 0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.Copy(promoted)
		rt.Release(promoted)
	}
}

func BenchmarkByrefAcquireRelease(b *testing.B) {
	rt := New()
	cell := newStackByref(8, 0, nil, nil)
	promoted := acquire(rt, cell)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.AssignField(new(unsafe.Pointer), unsafe.Pointer(cell), FieldIsByref)
		rt.DisposeField(unsafe.Pointer(promoted), FieldIsByref)
	}
}

func BenchmarkStackBlockPromotion(b *testing.B) {
	rt := New()
	desc := &Descriptor{Size: HeaderSize + 32}
	stack := newStackBlock(desc, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := rt.Copy(stack)
		rt.Release(p)
	}
}
