package discover_test

import (
	"testing"

	"github.com/katalvlaran/ndarray/discover"
	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typedArray is a minimal source.Array with a fixed dtype and shape.
type typedArray struct {
	dt    dtype.DType
	shape []int
}

func (a typedArray) DType() dtype.DType { return a.dt }
func (a typedArray) Shape() []int { return append([]int(nil), a.shape...) }
func (a typedArray) NDim() int { return len(a.shape) }
func (a typedArray) At(...int) (any, error) { return 0, nil }

// node is a shorthand for source.Classify.
func node(v any) source.Node { return source.Classify(v) }

// nested builds a rectangular nested []any of float64 with the given shape.
func nested(shape ...int) any {
	if len(shape) == 0 {
		return 1.5
	}
	out := make([]any, shape[0])
	for i := range out {
		out[i] = nested(shape[1:]...)
	}
	return out
}

// TestDepth_Rectangular verifies depth equals the nesting level for rectangular float input.
func TestDepth_Rectangular(t *testing.T) {
	for _, shape := range [][]int{{1}, {3}, {2, 2}, {2, 3, 4}, {1, 1, 1, 1}, {4, 1, 2}} {
		d, err := discover.Depth(node(nested(shape...)), dtype.MaxDims, true, false)
		require.NoError(t, err, "%v", shape)
		assert.Equal(t, len(shape), d, "%v", shape)
	}
}

// TestDepth_Rules covers each leaf rule.
func TestDepth_Rules(t *testing.T) {
	cases := []struct {
		name       string
		in         any
		stopText   bool
		stopRecord bool
		want       int
	}{
		{"empty", []any{}, true, false, 1},
		{"empty nested", []any{[]any{}}, true, false, 2},
		{"scalar", 3, true, false, 0},
		{"text stop", "abc", true, false, 0},
		{"text descend", "abc", false, false, 1},
		{"list of text descend", []any{"ab", "cd"}, false, false, 2},
		{"array", typedArray{dt: dtype.New(dtype.Double), shape: []int{2, 3}}, true, false, 2},
		{"list of arrays", []any{typedArray{dt: dtype.New(dtype.Int), shape: []int{4}}}, true, false, 2},
		{"tuple stop", []any{source.Tuple{1, 2}}, true, true, 1},
		{"tuple descend", []any{source.Tuple{1, 2}}, true, false, 2},
		{"first element only", []any{1, []any{2, 3}}, true, false, 1},
		{"unclassifiable", []any{map[string]int{}}, true, false, 1},
	}
	for _, tc := range cases {
		d, err := discover.Depth(node(tc.in), dtype.MaxDims, tc.stopText, tc.stopRecord)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, d, tc.name)
	}
}

// TestDepth_Exceeded ensures nesting beyond maxAllowed is rejected.
func TestDepth_Exceeded(t *testing.T) {
	_, err := discover.Depth(node(nested(1, 1, 1)), 2, true, false)
	require.ErrorIs(t, err, discover.ErrDepthExceeded)

	d, err := discover.Depth(node(nested(1, 1)), 2, true, false)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	_, err = discover.Depth(node(typedArray{dt: dtype.New(dtype.Bool), shape: []int{1, 1, 1}}), 2, true, false)
	require.ErrorIs(t, err, discover.ErrDepthExceeded)
}

// TestFillShape_Rectangular verifies exact sizes for rectangular input.
func TestFillShape_Rectangular(t *testing.T) {
	for _, shape := range [][]int{{1}, {5}, {2, 2}, {3, 1, 2}, {2, 3, 4}, {1, 4}} {
		got := make([]int, len(shape))
		err := discover.FillShape(node(nested(shape...)), len(shape), got, 0, true)
		require.NoError(t, err, "%v", shape)
		assert.Equal(t, shape, got)
	}
}

// TestFillShape_RaggedStrict verifies strict mode reports the ragged dimension and element.
func TestFillShape_RaggedStrict(t *testing.T) {
	got := make([]int, 2)
	err := discover.FillShape(node([]any{[]any{1, 2}, []any{3}}), 2, got, 0, true)
	require.ErrorIs(t, err, discover.ErrInconsistentShape)

	var se *discover.ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Dim)
	assert.Equal(t, []int{1}, se.Path)

	deep := []any{[]any{[]any{1, 2}, []any{3}}}
	got = make([]int, 3)
	err = discover.FillShape(node(deep), 3, got, 0, true)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Dim)
	assert.Equal(t, []int{0, 1}, se.Path)

	// raggedness two levels down across cousins is still caught
	cousins := []any{[]any{[]any{1, 2}}, []any{[]any{3}}}
	err = discover.FillShape(node(cousins), 3, make([]int, 3), 0, true)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Dim)
}

// TestFillShape_RaggedLenient verifies non-strict mode records the maximum size.
func TestFillShape_RaggedLenient(t *testing.T) {
	got := make([]int, 2)
	err := discover.FillShape(node([]any{[]any{1}, []any{1, 2, 3}, []any{}}), 2, got, 0, false)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, got)
}

// TestFillShape_Leaves covers arrays, scalars and the start offset.
func TestFillShape_Leaves(t *testing.T) {
	arr := typedArray{dt: dtype.New(dtype.Double), shape: []int{4, 5}}
	got := []int{9, 0, 0}
	require.NoError(t, discover.FillShape(node(arr), 2, got, 1, true))
	assert.Equal(t, []int{9, 4, 5}, got)

	zero := typedArray{dt: dtype.New(dtype.Double)}
	got = []int{7}
	require.NoError(t, discover.FillShape(node(zero), 1, got, 0, true))
	assert.Equal(t, []int{0}, got)

	got = []int{0}
	require.NoError(t, discover.FillShape(node("abc"), 1, got, 0, true))
	assert.Equal(t, []int{1}, got)

	got = []int{2, 2}
	require.NoError(t, discover.FillShape(node([]any{1, 2}), 0, got, 0, true))
	assert.Equal(t, []int{2, 2}, got, "numDims=0 writes nothing")

	err := discover.FillShape(node([]any{1}), 2, make([]int, 1), 0, true)
	assert.ErrorIs(t, err, discover.ErrShortShape)
}

// TestFillShape_ArrayElements verifies sequences of typed arrays stack their shapes.
func TestFillShape_ArrayElements(t *testing.T) {
	a := typedArray{dt: dtype.New(dtype.Int), shape: []int{2, 3}}
	b := typedArray{dt: dtype.New(dtype.Int), shape: []int{2, 4}}

	got := make([]int, 3)
	require.NoError(t, discover.FillShape(node([]any{a, a}), 3, got, 0, true))
	assert.Equal(t, []int{2, 2, 3}, got)

	err := discover.FillShape(node([]any{a, b}), 3, make([]int, 3), 0, true)
	require.ErrorIs(t, err, discover.ErrInconsistentShape)
}
