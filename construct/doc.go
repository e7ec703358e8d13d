// SPDX-License-Identifier: MIT

// Package construct builds typed N-d arrays from arbitrary host values.
//
// A Builder classifies the source (typed array, nested sequence, scalar or
// text, anything else) and dispatches:
//
//   - arrays are handed to the Allocator for a copy-or-view decision;
//   - sequences run type discovery (unless a type is requested), depth and
//     shape discovery, allocation and a depth-first population walk;
//   - scalars become 0-d arrays only with WithScalarConversion;
//   - everything else fails with ErrUnclassifiableSource.
//
// Layout requirements (WithFortranOrder, WithNativeByteOrder,
// WithElementStrides, WithUpdateSourceOnWrite, WithForceCast) are functional
// options, given once to New or per call.
//
// Quick example:
//
//	b := construct.New(storage.NewEngine())
//	a, err := b.FromAny([]any{[]any{1, 2}, []any{3, 4}}, nil, 0, 0)
//	// a.Shape() == [2 2], a.DType() == <i8 (long)
package construct
