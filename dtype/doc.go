// SPDX-License-Identifier: MIT

// Package dtype defines array element types and the promotion lattice over them.
//
// A DType is an immutable descriptor: a Kind tag, a byte order, an item size
// and, for structured records, named fields or a fixed sub-array shape.
//
// Promotion ladder (lowest first):
//
//	Bool < Byte < Short < Int < Long < LongLong < Float < Double < Object
//
// Promote(a, b) returns the smallest type both sides cast to safely. Pairs
// that a narrower float cannot hold exactly climb further: Promote(Int, Float)
// is Double. Records only promote with equivalent records; mixing one with
// anything else gives Object.
//
//	d, _ := dtype.Parse("<i4")
//	dtype.Promote(d, dtype.New(dtype.Float)) // float64
package dtype
