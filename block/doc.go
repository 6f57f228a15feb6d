// Package block implements the runtime support for closures that begin life
// on a call stack and are promoted to heap storage when they outlive their
// creating scope.
//
// This package contains:
//   - Closure object layout and reference-counted promotion (Copy/Release)
//   - Byref cells: promotion-safe, refcounted indirection cells for
//     mutably-captured variables shared by multiple closures
//   - The per-field copy/dispose protocol invoked by generated helpers
//     (AssignField/DisposeField)
//   - The type-encoding accessor (Signature)
//
// The package is a passive library: it schedules nothing and is invoked
// synchronously from arbitrary caller threads. Compiler-generated code owns
// the layout of captured fields, the descriptor records, and the helper
// functions; this package only ever moves their bytes and maintains the
// reference counts.
package block
