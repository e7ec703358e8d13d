// SPDX-License-Identifier: MIT

package discover

import (
	"fmt"
	"unicode/utf8"

	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/source"
)

// Resolver supplies an element type for a leaf that discovery cannot type itself.
type Resolver func(v any) (dtype.DType, error)

// Config carries the library-wide defaults into discovery.
// It is passed explicitly so discovery stays free of global state.
type Config struct {
	// DefaultType is used for empty sequences; the zero value means dtype.DefaultKind.
	DefaultType dtype.DType

	// DefaultResolver types unclassifiable leaves and leaves below the depth
	// limit; nil makes those leaves fail with ErrDefaultTypeUnavailable.
	DefaultResolver Resolver
}

// DefaultConfig returns the documented defaults (Double for empty sequences, no resolver).
func DefaultConfig() Config {
	return Config{DefaultType: dtype.New(dtype.DefaultKind)}
}

func (c Config) defaultType() dtype.DType {
	if c.DefaultType.IsUnset() {
		return dtype.New(dtype.DefaultKind)
	}
	return c.DefaultType
}

func (c Config) resolve(v any) (dtype.DType, error) {
	if c.DefaultResolver == nil {
		return dtype.DType{}, fmt.Errorf("DiscoverType(%T): %w", v, ErrDefaultTypeUnavailable)
	}
	return c.DefaultResolver(v)
}

// DiscoverType aggregates the element types of n bottom-up into one dtype.
//
// Implementation:
//   - Stage 1: a typed array is authoritative; it is promoted with minimum
//     only when the caller supplied one.
//   - Stage 2: an unset minimum becomes Bool (bottom of the ladder).
//   - Stage 3: remainingDepth < 0 hands the leaf to the default resolver.
//   - Stage 4: scalars go through source.ClassifyScalar, text becomes a
//     fixed-width String/Unicode type, sequences fold their elements with
//     dtype.Promote seeded by minimum (an empty sequence seen with a Bool
//     accumulator becomes cfg.DefaultType), unclassifiable leaves use the resolver.
//   - Stage 5: promote with minimum; a record result is replaced by Object
//     unless minimum itself was a record.
//
// Errors:
//   - source.ErrUnsupportedScalarKind, ErrDefaultTypeUnavailable, or a resolver error.
//
// Complexity: O(total nodes).
func DiscoverType(n source.Node, minimum dtype.DType, remainingDepth int, cfg Config) (dtype.DType, error) {
	if a, ok := n.(source.ArrayNode); ok {
		found := a.Array.DType()
		if minimum.IsUnset() {
			return found, nil
		}
		return settle(found, minimum), nil
	}
	if minimum.IsUnset() {
		minimum = dtype.New(dtype.Bool)
	}

	var (
		found dtype.DType
		err   error
	)
	if remainingDepth < 0 {
		found, err = cfg.resolve(n.Value())
		if err != nil {
			return dtype.DType{}, err
		}
		return settle(found, minimum), nil
	}

	switch v := n.(type) {
	case source.ScalarNode:
		found, err = source.ClassifyScalar(v.V)

	case source.TextNode:
		found = textType(v)

	case source.SequenceNode:
		acc := minimum
		if v.Len() == 0 && acc.Kind() == dtype.Bool {
			acc = cfg.defaultType()
		}
		for i := 0; i < v.Len() && err == nil; i++ {
			var t dtype.DType
			t, err = DiscoverType(v.Elem(i), acc, remainingDepth-1, cfg)
			acc = dtype.Promote(t, acc)
		}
		found = acc

	case source.UnclassifiableNode:
		found, err = cfg.resolve(v.V)

	default:
		panic(fmt.Sprintf("discover: unknown node %T", n))
	}
	if err != nil {
		return dtype.DType{}, err
	}

	return settle(found, minimum), nil
}

// settle applies the final promotion and the "no invented records" rule.
func settle(found, minimum dtype.DType) dtype.DType {
	out := dtype.Promote(found, minimum)
	if out.Kind() == dtype.Void && minimum.Kind() != dtype.Void {
		return dtype.New(dtype.Object)
	}
	return out
}

// textType sizes a fixed-width text type for one text leaf (at least one character).
func textType(t source.TextNode) dtype.DType {
	if t.Bytes {
		return dtype.NewString(max(1, len(t.Text)))
	}
	return dtype.NewUnicode(max(1, utf8.RuneCountInString(t.Text)))
}
