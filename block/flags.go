package block

// ---------------------------------------------------------------------------
// Binary contract shared with generated code
// ---------------------------------------------------------------------------
//
// The flag bit positions and field-kind tags below are part of the ABI
// between this runtime and compiler-generated copy/dispose helpers.
//
// IMPORTANT: Once assigned, these values must NEVER change — generated code
// embeds them as integer literals.

// Flags is the 32-bit flags word carried by closures and byref cells.
//
// On a byref cell the word is packed: the low 24 bits hold the atomic
// reference count and the high byte holds the flag bits. On a closure the
// count lives in a separate field and only the flag bits are used.
type Flags uint32

const (
	// RefcountMask covers the low 24 bits of a byref cell's packed
	// flags/refcount word. Zero count bits mean "not yet promoted".
	RefcountMask Flags = 0x00FFFFFF

	// HasCopyDispose is set when generated copy/dispose helpers exist
	// (descriptor helpers for a closure, keep/dispose for a byref cell).
	HasCopyDispose Flags = 1 << 25

	// HasCtor is set when captured fields have nontrivial constructors.
	HasCtor Flags = 1 << 26

	// IsGlobal marks a static/global closure: immortal, never promoted,
	// never reference-counted.
	IsGlobal Flags = 1 << 28

	// UseStret is set when the invoke function returns its result through
	// a hidden struct-return argument.
	UseStret Flags = 1 << 29

	// HasSignature is set when the descriptor carries a type-encoding
	// string.
	HasSignature Flags = 1 << 30
)

// FieldKind tags one captured field for AssignField and DisposeField.
// Object, block, and byref are mutually exclusive; FieldIsWeak and
// ByrefCaller are modifiers combined by OR.
type FieldKind uint32

const (
	// FieldIsObject marks a captured object reference, transferred through
	// the host object model's retain/release capability.
	FieldIsObject FieldKind = 3

	// FieldIsBlock marks a captured closure, deep-copied via Copy when its
	// enclosing closure is promoted.
	FieldIsBlock FieldKind = 7

	// FieldIsByref marks a reference to a byref cell.
	FieldIsByref FieldKind = 8

	// FieldIsWeak modifies the kinds above. Weak capture is intentionally
	// unimplemented; the modifier is accepted and ignored.
	FieldIsWeak FieldKind = 16

	// ByrefCaller marks a call relayed from a byref cell's own keep or
	// dispose helper. The relay transfers the word without any ownership
	// side effect, so payload objects are not double-retained.
	ByrefCaller FieldKind = 128
)
