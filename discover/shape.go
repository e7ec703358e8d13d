// SPDX-License-Identifier: MIT

package discover

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ndarray/source"
)

// FillShape writes the per-dimension sizes of n into shape[start:start+numDims].
//
// Implementation:
//   - Stage 1: numDims <= 0 writes nothing.
//   - Stage 2: a typed array copies its own sizes (a 0-d array writes a single 0).
//   - Stage 3: a sequence writes its length, then fills every element's
//     sub-shape into a scratch buffer and compares it with the first element's.
//   - Stage 4: text, scalar and unclassifiable leaves write 1.
//
// Behavior highlights:
//   - strict: the first disagreeing sibling fails with *ShapeError
//     (errors.Is(err, ErrInconsistentShape)) carrying the absolute dimension
//     and the index path of the sibling.
//   - non-strict: each dimension records the maximum size any element reached.
//
// Complexity: O(total nodes * numDims).
func FillShape(n source.Node, numDims int, shape []int, start int, strict bool) error {
	if numDims <= 0 {
		return nil
	}
	if start < 0 || start+numDims > len(shape) {
		return fmt.Errorf("FillShape: %d dims from %d into %d: %w", numDims, start, len(shape), ErrShortShape)
	}

	switch v := n.(type) {
	case source.ArrayNode:
		dims := v.Array.Shape()
		if len(dims) == 0 {
			shape[start] = 0
			return nil
		}
		for i := 0; i < numDims; i++ {
			if i < len(dims) {
				shape[start+i] = dims[i]
			} else {
				shape[start+i] = 0
			}
		}
		return nil

	case source.SequenceNode:
		return fillSequence(v, numDims, shape, start, strict)

	case source.TextNode, source.ScalarNode, source.UnclassifiableNode:
		shape[start] = 1
		return nil

	default:
		panic(fmt.Sprintf("discover: unknown node %T", n))
	}
}

// fillSequence handles one sequence level of FillShape.
func fillSequence(seq source.SequenceNode, numDims int, shape []int, start int, strict bool) error {
	n := seq.Len()
	shape[start] = n
	rest := numDims - 1
	if rest == 0 {
		return nil
	}

	sub := shape[start+1 : start+numDims]
	clear(sub)
	if n == 0 {
		return nil
	}

	scratch := make([]int, rest)
	for i := 0; i < n; i++ {
		clear(scratch)
		if err := FillShape(seq.Elem(i), rest, scratch, 0, strict); err != nil {
			return relocate(err, start+1, i)
		}
		if i == 0 {
			copy(sub, scratch)
			continue
		}
		for d := range scratch {
			if scratch[d] == sub[d] {
				continue
			}
			if strict {
				return &ShapeError{Dim: start + 1 + d, Path: []int{i}}
			}
			if scratch[d] > sub[d] {
				sub[d] = scratch[d]
			}
		}
	}

	return nil
}

// relocate shifts a child's ShapeError into the parent's coordinates.
func relocate(err error, offset, index int) error {
	var se *ShapeError
	if !errors.As(err, &se) {
		return err
	}
	se.Dim += offset
	se.Path = append([]int{index}, se.Path...)

	return se
}
