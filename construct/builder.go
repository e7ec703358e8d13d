// SPDX-License-Identifier: MIT

package construct

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ndarray/discover"
	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/source"
	"github.com/katalvlaran/ndarray/storage"
)

// Allocator is the storage engine contract used by Builder.
// *storage.Engine implements it.
type Allocator interface {
	// Allocate returns a zero-initialised array of dt with the given shape.
	Allocate(dt dtype.DType, shape []int, fortran bool) (*storage.Array, error)
	// ConvertArray returns src itself when it already satisfies dt and flags,
	// or a converted copy.
	ConvertArray(src source.Array, dt dtype.DType, flags storage.Flags) (*storage.Array, error)
	// CopyInto returns a dense copy of a.
	CopyInto(a *storage.Array, fortran bool) (*storage.Array, error)
}

var (
	_ Allocator    = (*storage.Engine)(nil)
	_ source.Array = (*storage.Array)(nil)
)

// Builder turns host values into arrays. It is immutable after New and safe
// for concurrent use when its Allocator is.
type Builder struct {
	alloc Allocator
	opts  Options
}

// New returns a Builder allocating through alloc with default options opts.
// A nil alloc uses storage.NewEngine().
func New(alloc Allocator, opts ...Option) *Builder {
	if alloc == nil {
		alloc = storage.NewEngine()
	}
	return &Builder{alloc: alloc, opts: gatherOptions(defaultOptions(), opts...)}
}

// FromAny builds an array from src.
//
// Implementation:
//   - Stage 1: classify src and dispatch on its kind.
//   - Stage 2 (array): convert through the Allocator, which may return src
//     itself; write-back is only valid here.
//   - Stage 3 (sequence): discover the element type (unless dt is given),
//     the depth and the shape, allocate, then populate depth-first.
//   - Stage 4 (scalar, top-level text): a 0-d array when WithScalarConversion
//     is set, ErrScalarConversionUnsupported otherwise.
//   - Stage 5 (anything else): ErrUnclassifiableSource.
//
// Behavior highlights:
//   - minDepth and maxDepth bound the dimension count when positive
//     (ErrInvalidDimensionCount); for Object element types a deeper source is
//     cut at maxDepth instead.
//   - Text element types tolerate ragged input; missing cells stay zero.
//   - On any error the result is nil; a partially populated array is never returned.
//   - Type discovery runs before depth discovery, so an over-deep source
//     without a requested dtype fails with discover.ErrDefaultTypeUnavailable
//     (its deepest leaves exceed the typing limit); with a requested dtype it
//     fails with discover.ErrDepthExceeded.
//   - A record tuple at the top level with a requested record dtype is a
//     single element and follows the scalar rules of Stage 4.
//
// Complexity: O(total source nodes * depth).
func (b *Builder) FromAny(src any, dt *dtype.DType, minDepth, maxDepth int, opts ...Option) (*storage.Array, error) {
	o := gatherOptions(b.opts, opts...)
	n := source.Classify(src)
	path := pathOf(n)
	o.logger.Debug("construct: dispatch", slog.String("path", path), slog.String("source", fmt.Sprintf("%T", src)))

	var (
		a   *storage.Array
		err error
	)
	switch {
	case path == PathArray:
		a, err = b.fromArray(n.(source.ArrayNode).Array, dt, minDepth, maxDepth, o)
	case o.updateIfCopy:
		err = fmt.Errorf("FromAny(%s): write-back needs an array source: %w", path, ErrInvalidFlagCombination)
	default:
		a, err = b.fromValue(n, dt, minDepth, maxDepth, o)
	}

	o.metrics.observe(path, a, err)
	if err != nil {
		o.logger.Warn("construct: rejected", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	o.logger.Debug("construct: built",
		slog.String("id", a.ID.String()),
		slog.String("dtype", a.DType().String()),
		slog.Any("shape", a.Shape()),
		slog.Int("ndim", a.NDim()))

	return a, nil
}

// CheckFromAny is FromAny with the layout requirements enforced on the result.
//
// Behavior highlights:
//   - WithNativeByteOrder: a requested dtype is switched to native order; an
//     array source without a requested dtype keeps its own type in native order.
//   - WithElementStrides: a result whose strides are not multiples of its
//     item size is replaced by a dense copy.
func (b *Builder) CheckFromAny(src any, dt *dtype.DType, minDepth, maxDepth int, opts ...Option) (*storage.Array, error) {
	o := gatherOptions(b.opts, opts...)
	if o.notSwapped {
		switch {
		case dt != nil && !dt.IsUnset():
			native := dt.NativeOrder()
			dt = &native
		default:
			if an, ok := source.Classify(src).(source.ArrayNode); ok {
				native := an.Array.DType().NativeOrder()
				dt = &native
			}
		}
	}

	a, err := b.FromAny(src, dt, minDepth, maxDepth, opts...)
	if err != nil {
		return nil, err
	}
	if o.elementStrides && !a.HasElementStrides() {
		if a, err = b.alloc.CopyInto(a, o.fortran); err != nil {
			return nil, fmt.Errorf("CheckFromAny: %w", err)
		}
	}

	return a, nil
}

// FromArray converts an existing array to dt (nil keeps its type) under the
// builder's layout requirements. No depth bounds apply.
func (b *Builder) FromArray(src source.Array, dt *dtype.DType, opts ...Option) (*storage.Array, error) {
	o := gatherOptions(b.opts, opts...)
	a, err := b.fromArray(src, dt, 0, 0, o)
	o.metrics.observe(PathArray, a, err)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// fromArray handles array sources.
func (b *Builder) fromArray(src source.Array, dt *dtype.DType, minDepth, maxDepth int, o Options) (*storage.Array, error) {
	var target dtype.DType
	if dt != nil {
		target = *dt
	}
	a, err := b.alloc.ConvertArray(src, target, o.storageFlags())
	if err != nil {
		return nil, fmt.Errorf("FromAny(array): %w", err)
	}
	if err = checkDepth(a.NDim(), minDepth, maxDepth); err != nil {
		return nil, err
	}
	return a, nil
}

// fromValue dispatches the non-array sources.
func (b *Builder) fromValue(n source.Node, dt *dtype.DType, minDepth, maxDepth int, o Options) (*storage.Array, error) {
	switch v := n.(type) {
	case source.SequenceNode:
		return b.fromSequence(v, dt, minDepth, maxDepth, o)
	case source.ScalarNode, source.TextNode:
		return b.fromScalar(n, dt, o)
	case source.UnclassifiableNode:
		return nil, fmt.Errorf("FromAny(%T): %w", v.V, ErrUnclassifiableSource)
	}
	panic(fmt.Sprintf("construct: unknown node %T", n))
}

// fromSequence handles nested sequences.
func (b *Builder) fromSequence(n source.SequenceNode, dt *dtype.DType, minDepth, maxDepth int, o Options) (*storage.Array, error) {
	var (
		elem dtype.DType
		err  error
	)
	if dt != nil && !dt.IsUnset() {
		elem = *dt
	} else if elem, err = discover.DiscoverType(n, dtype.DType{}, dtype.MaxDims, o.discovery); err != nil {
		return nil, err
	}
	if o.notSwapped {
		elem = elem.NativeOrder()
	}

	stopAtText := !(elem.Kind() == dtype.String && elem.IsChar())
	depth, err := discover.Depth(n, dtype.MaxDims, stopAtText, elem.IsStructured())
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		// a lone record tuple fills a single element
		return b.fromScalar(n, &elem, o)
	}
	if elem.Kind() == dtype.Object && maxDepth > 0 && depth > maxDepth {
		depth = maxDepth
	}
	if err = checkDepth(depth, minDepth, maxDepth); err != nil {
		return nil, err
	}

	shape := make([]int, depth)
	if err = discover.FillShape(n, depth, shape, 0, !elem.IsText()); err != nil {
		return nil, err
	}
	if elem.IsChar() && depth > 0 && shape[depth-1] == 1 {
		shape = shape[:depth-1]
	}

	a, err := b.alloc.Allocate(elem, shape, o.fortran)
	if err != nil {
		return nil, fmt.Errorf("FromAny(sequence): %w", err)
	}
	if err = populate(a, n); err != nil {
		return nil, fmt.Errorf("FromAny(sequence): %w", err)
	}

	return a, nil
}

// fromScalar builds a 0-d array from a scalar or text value.
func (b *Builder) fromScalar(n source.Node, dt *dtype.DType, o Options) (*storage.Array, error) {
	if !o.scalarConversion {
		return nil, fmt.Errorf("FromAny(%T): %w", n.Value(), ErrScalarConversionUnsupported)
	}

	var (
		elem dtype.DType
		err  error
	)
	if dt != nil && !dt.IsUnset() {
		elem = *dt
	} else if elem, err = discover.DiscoverType(n, dtype.DType{}, dtype.MaxDims, o.discovery); err != nil {
		return nil, err
	}

	a, err := b.alloc.Allocate(elem, nil, false)
	if err != nil {
		return nil, fmt.Errorf("FromAny(scalar): %w", err)
	}
	if err = a.Set(leafValue(n)); err != nil {
		return nil, fmt.Errorf("FromAny(scalar): %w", err)
	}

	return a, nil
}

// checkDepth validates minDepth <= depth <= maxDepth for the positive bounds.
func checkDepth(depth, minDepth, maxDepth int) error {
	if minDepth > 0 && depth < minDepth {
		return fmt.Errorf("depth %d below minimum %d: %w", depth, minDepth, ErrInvalidDimensionCount)
	}
	if maxDepth > 0 && depth > maxDepth {
		return fmt.Errorf("depth %d above maximum %d: %w", depth, maxDepth, ErrInvalidDimensionCount)
	}
	return nil
}

func pathOf(n source.Node) string {
	switch n.(type) {
	case source.ArrayNode:
		return PathArray
	case source.SequenceNode:
		return PathSequence
	case source.ScalarNode, source.TextNode:
		return PathScalar
	case source.UnclassifiableNode:
		return PathUnclassifiable
	}
	panic(fmt.Sprintf("construct: unknown node %T", n))
}
