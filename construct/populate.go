// SPDX-License-Identifier: MIT

package construct

import (
	"fmt"

	"github.com/katalvlaran/ndarray/source"
	"github.com/katalvlaran/ndarray/storage"
)

// populate writes the leaves of n into a, depth-first and left to right,
// visiting the same nodes FillShape visited.
func populate(a *storage.Array, n source.Node) error {
	idx := make([]int, a.NDim())
	return fill(a, n, idx, 0)
}

// fill writes node n whose multi-index prefix is idx[:dim].
//
// Behavior highlights:
//   - at the last dimension every node is a leaf (record tuples, object
//     values and 0-d arrays included);
//   - a typed array above the last dimension is copied element-wise;
//   - a leaf met above the last dimension fills the first cell of its block
//     (ragged text input), the remaining cells keep their zero value.
func fill(a *storage.Array, n source.Node, idx []int, dim int) error {
	ndim := len(idx)
	if dim == ndim {
		return a.Set(leafValue(n), idx...)
	}

	switch v := n.(type) {
	case source.SequenceNode:
		for i := 0; i < v.Len(); i++ {
			idx[dim] = i
			if err := fill(a, v.Elem(i), idx, dim+1); err != nil {
				return err
			}
		}
		clear(idx[dim:])
		return nil

	case source.ArrayNode:
		return fillArray(a, v.Array, idx, dim)

	case source.TextNode, source.ScalarNode, source.UnclassifiableNode:
		clear(idx[dim:])
		return a.Set(leafValue(n), idx...)

	default:
		panic(fmt.Sprintf("construct: unknown node %T", n))
	}
}

// fillArray copies src into the block of a starting at idx[:dim].
// When src has more dimensions than remain (object arrays cut at maxDepth),
// the extra dimensions are stored as nested []any values.
func fillArray(a *storage.Array, src source.Array, idx []int, dim int) error {
	shape := src.Shape()
	rest := len(idx) - dim
	if len(shape) < rest {
		// FillShape recorded zero-sized dimensions for the missing levels.
		return nil
	}

	outer := shape[:rest]
	inner := make([]int, len(shape))
	count := 1
	for _, s := range outer {
		count *= s
	}
	for i := 0; i < count; i++ {
		r := i
		for d := rest - 1; d >= 0; d-- {
			inner[d] = r % outer[d]
			idx[dim+d] = inner[d]
			r /= outer[d]
		}
		v, err := subValue(src, shape, inner, rest)
		if err != nil {
			return err
		}
		if err = a.Set(v, idx...); err != nil {
			return err
		}
	}
	clear(idx[dim:])

	return nil
}

// subValue reads src at inner[:d] followed by every index of the remaining
// dimensions, nesting them as []any.
func subValue(src source.Array, shape, inner []int, d int) (any, error) {
	if d == len(shape) {
		return src.At(inner...)
	}
	out := make([]any, shape[d])
	for i := range out {
		inner[d] = i
		v, err := subValue(src, shape, inner, d+1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// leafValue returns the value stored for a leaf node.
func leafValue(n source.Node) any {
	if a, ok := n.(source.ArrayNode); ok && a.Array.NDim() == 0 {
		if v, err := a.Array.At(); err == nil {
			return v
		}
	}
	return n.Value()
}
