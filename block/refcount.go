package block

import (
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Packed flags/refcount word
// ---------------------------------------------------------------------------
//
// A byref cell's flags word packs an atomic 24-bit reference count into the
// low bits alongside the flag bits in the high byte. Both operations below
// isolate the count with RefcountMask and retry a compare-and-swap on the
// whole word, so concurrent flag readers always see a consistent word.
// The raw packed word is never handed to callers.

// latchingIncr adds one holder to the packed word and returns the new
// count. Overflowing 24 bits means generated code leaked 16 million
// references; that is a logic violation, not a recoverable state.
func latchingIncr(word *uint32) int32 {
	for {
		old := atomic.LoadUint32(word)
		if old&uint32(RefcountMask) == uint32(RefcountMask) {
			panic("block: byref reference count overflow")
		}
		if atomic.CompareAndSwapUint32(word, old, old+1) {
			return int32((old + 1) & uint32(RefcountMask))
		}
	}
}

// latchingDecr drops one holder and returns the new count. A word whose
// count bits already read zero is left untouched and reported as latched;
// release paths treat that as a double-free guard rather than decrementing
// below zero.
func latchingDecr(word *uint32) (count int32, latched bool) {
	for {
		old := atomic.LoadUint32(word)
		if old&uint32(RefcountMask) == 0 {
			return 0, true
		}
		if atomic.CompareAndSwapUint32(word, old, old-1) {
			return int32((old - 1) & uint32(RefcountMask)), false
		}
	}
}

// refcountBits reads the current count from the packed word.
func refcountBits(word *uint32) int32 {
	return int32(atomic.LoadUint32(word) & uint32(RefcountMask))
}
