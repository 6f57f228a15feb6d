package block

// ---------------------------------------------------------------------------
// Type encoding accessor
// ---------------------------------------------------------------------------

// Signature returns the closure's type-encoding string. The second result
// is false when b is nil, carries no descriptor, or was compiled without a
// signature. Pure read, no side effects.
func Signature(b *Layout) (string, bool) {
	if b == nil || b.Descriptor == nil || b.Flags&HasSignature == 0 {
		return "", false
	}
	return b.Descriptor.Signature, true
}
