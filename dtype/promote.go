// SPDX-License-Identifier: MIT

// Package dtype - type promotion ("smallest common type").
//
// Determinism & Policy:
//   - The numeric ladder is a join-semilattice under CanCastSafely, so Promote is
//     commutative, idempotent and associative there.
//   - Structured records only promote with equivalent records. Any other mix
//     involving a record yields Object so a record type is never invented from scalars.
//   - Text promotes with text; Bool (the ladder bottom and discovery seed) yields
//     to text; any other numeric/text mix yields Object.

package dtype

// Promote returns the smallest element type to which both a and b can be
// assigned without loss.
// NoType acts as the identity element.
//
// Complexity: O(k) for k kinds on the ladder; record equivalence is O(fields).
func Promote(a, b DType) DType {
	switch {
	case a.kind == NoType:
		return b
	case b.kind == NoType:
		return a
	case Equivalent(a, b):
		return a
	case a.kind == Bool && b.IsText():
		return b
	case b.kind == Bool && a.IsText():
		return a
	case a.kind == Void || b.kind == Void:
		return New(Object)
	case a.kind == Object || b.kind == Object:
		return New(Object)
	case a.IsText() && b.IsText():
		return promoteText(a, b)
	case a.IsText() || b.IsText():
		return New(Object)
	}

	return New(promoteKind(a.kind, b.kind))
}

// PromoteKind is Promote restricted to the kinds of the numeric ladder.
func PromoteKind(a, b Kind) Kind {
	if a == NoType {
		return b
	}
	if b == NoType {
		return a
	}

	return promoteKind(a, b)
}

// promoteKind walks upward from the higher-ranked kind until both sides cast safely.
func promoteKind(a, b Kind) Kind {
	start := a
	if b > a {
		start = b
	}
	for k := start; k < numKinds; k++ {
		if CanCastSafely(a, k) && CanCastSafely(b, k) {
			return k
		}
	}

	return Object
}

// promoteText merges two text descriptors: Unicode wins over String and the
// item size is the larger one, a String side counting four bytes per character
// once the result is Unicode.
func promoteText(a, b DType) DType {
	if a.kind == String && b.kind == String {
		n := a.itemSize
		if b.itemSize > n {
			n = b.itemSize
		}
		return NewString(n)
	}

	chars := a.Chars()
	if b.Chars() > chars {
		chars = b.Chars()
	}

	return NewUnicode(chars)
}
