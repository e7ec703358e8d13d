// SPDX-License-Identifier: MIT

// Package source - classification of host values into discovery nodes.
//
// Purpose:
//   - Give the discovery engine one closed view over arbitrary Go values:
//     ArrayNode | SequenceNode | TextNode | ScalarNode | UnclassifiableNode.
//   - Keep the set closed: the node interface is sealed by an unexported
//     method, so only this package can add a variant, and every consumer
//     switches over exactly these five types.
//
// Notes:
//   - Nodes are recomputed on every visit; SequenceNode.Elem classifies the
//     element afresh each time it is called.
//   - Cyclic sources are not detected. Depth bounds are the only guard.

package source

import (
	"math/big"
	"reflect"

	"github.com/katalvlaran/ndarray/dtype"
)

// Array is the view of an already-typed array that discovery needs.
// *storage.Array implements it.
type Array interface {
	// DType returns the element type.
	DType() dtype.DType
	// Shape returns a copy of the per-dimension sizes.
	Shape() []int
	// NDim returns the number of dimensions.
	NDim() int
	// At returns the element at the given multi-index.
	At(index ...int) (any, error)
}

// Tuple marks a fixed-arity record tuple: a sequence that fills one record
// element when the target type is structured.
type Tuple []any

// Node is one classified host value.
type Node interface {
	// Value returns the raw host value behind the node.
	Value() any
	sealed()
}

// ArrayNode wraps an already-typed array.
type ArrayNode struct{ Array Array }

// SequenceNode wraps an ordered, countable, re-visitable host sequence.
type SequenceNode struct {
	items  reflect.Value
	Record bool // true for Tuple values
}

// TextNode wraps a string ([]byte when Bytes is set).
type TextNode struct {
	Text  string
	Bytes bool
}

// ScalarNode wraps a numeric or boolean host scalar.
// Not every scalar is supported by ClassifyScalar (complex and big numbers are not).
type ScalarNode struct{ V any }

// UnclassifiableNode wraps a value outside the host value model (nil, maps, structs, ...).
type UnclassifiableNode struct{ V any }

func (ArrayNode) sealed() {}
func (SequenceNode) sealed() {}
func (TextNode) sealed() {}
func (ScalarNode) sealed() {}
func (UnclassifiableNode) sealed() {}

// Value implements Node.
func (n ArrayNode) Value() any { return n.Array }

// Value implements Node.
func (n SequenceNode) Value() any { return n.items.Interface() }

// Value implements Node.
func (n TextNode) Value() any {
	if n.Bytes {
		return []byte(n.Text)
	}
	return n.Text
}

// Value implements Node.
func (n ScalarNode) Value() any { return n.V }

// Value implements Node.
func (n UnclassifiableNode) Value() any { return n.V }

// Len returns the number of elements.
func (n SequenceNode) Len() int { return n.items.Len() }

// Elem classifies the i-th element.
func (n SequenceNode) Elem(i int) Node { return Classify(n.items.Index(i).Interface()) }

var (
	tupleType   = reflect.TypeOf(Tuple(nil))
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
	bigFltType  = reflect.TypeOf((*big.Float)(nil))
	bigRatType  = reflect.TypeOf((*big.Rat)(nil))
	byteSlcType = reflect.TypeOf([]byte(nil))
)

// Classify maps one host value onto a Node.
//
// Implementation:
//   - Stage 1: nil pointers are unclassifiable; typed arrays (source.Array)
//     win over everything else.
//   - Stage 2: text ([]byte, string kinds) before generic slices so bytes are not descended.
//   - Stage 3: Tuple, then any other slice or Go array as a plain sequence.
//   - Stage 4: bool/int/uint/float/complex kinds and math/big numbers are scalars.
//   - Stage 5: anything else is unclassifiable.
//
// Complexity: O(1).
func Classify(v any) Node {
	if v == nil {
		return UnclassifiableNode{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return UnclassifiableNode{V: v}
	}
	if a, ok := v.(Array); ok {
		return ArrayNode{Array: a}
	}

	switch rv.Type() {
	case bigIntType, bigFltType, bigRatType:
		return ScalarNode{V: v}
	case tupleType:
		return SequenceNode{items: rv, Record: true}
	}

	switch rv.Kind() {
	case reflect.String:
		return TextNode{Text: rv.String()}
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 && rv.Type().ConvertibleTo(byteSlcType) {
			return TextNode{Text: string(rv.Convert(byteSlcType).Bytes()), Bytes: true}
		}
		return SequenceNode{items: rv}
	case reflect.Array:
		return SequenceNode{items: rv}
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return ScalarNode{V: v}
	default:
		return UnclassifiableNode{V: v}
	}
}
