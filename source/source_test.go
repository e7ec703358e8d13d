package source_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeArray is the smallest source.Array for classification tests.
type fakeArray struct{ shape []int }

func (f fakeArray) DType() dtype.DType { return dtype.New(dtype.Double) }
func (f fakeArray) Shape() []int { return append([]int(nil), f.shape...) }
func (f fakeArray) NDim() int { return len(f.shape) }
func (f fakeArray) At(...int) (any, error) { return 0.0, nil }

type celsius float64

// TestClassify_Variants verifies the host value mapping of every node variant.
func TestClassify_Variants(t *testing.T) {
	_, ok := source.Classify(fakeArray{shape: []int{2}}).(source.ArrayNode)
	assert.True(t, ok, "array")

	seq, ok := source.Classify([]any{1, 2}).(source.SequenceNode)
	require.True(t, ok, "[]any")
	assert.Equal(t, 2, seq.Len())
	assert.False(t, seq.Record)

	typed, ok := source.Classify([]float32{1, 2, 3}).(source.SequenceNode)
	require.True(t, ok, "[]float32")
	assert.Equal(t, 3, typed.Len())
	_, ok = typed.Elem(0).(source.ScalarNode)
	assert.True(t, ok)

	arr, ok := source.Classify([2]int{1, 2}).(source.SequenceNode)
	require.True(t, ok, "[2]int")
	assert.Equal(t, 2, arr.Len())

	tup, ok := source.Classify(source.Tuple{1, 2.5}).(source.SequenceNode)
	require.True(t, ok, "tuple")
	assert.True(t, tup.Record)

	text, ok := source.Classify("abc").(source.TextNode)
	require.True(t, ok, "string")
	assert.False(t, text.Bytes)
	assert.Equal(t, "abc", text.Value())

	raw, ok := source.Classify([]byte("xy")).(source.TextNode)
	require.True(t, ok, "[]byte")
	assert.True(t, raw.Bytes)
	assert.Equal(t, []byte("xy"), raw.Value())

	for _, v := range []any{1, int8(1), uint64(3), 2.5, float32(1), true, complex(1, 2), big.NewInt(7), celsius(3)} {
		_, ok = source.Classify(v).(source.ScalarNode)
		assert.True(t, ok, "%T", v)
	}

	for _, v := range []any{nil, map[string]int{}, struct{}{}, new(int), func() {}} {
		_, ok = source.Classify(v).(source.UnclassifiableNode)
		assert.True(t, ok, "%T", v)
	}
}

// TestClassifyScalar_Supported verifies the scalar -> dtype table.
func TestClassifyScalar_Supported(t *testing.T) {
	cases := []struct {
		in   any
		want dtype.Kind
	}{
		{1.5, dtype.Double},
		{float32(1.5), dtype.Float},
		{true, dtype.Bool},
		{int8(1), dtype.Byte},
		{uint8(1), dtype.Byte},
		{int16(1), dtype.Long},
		{int32(1), dtype.Long},
		{1, dtype.Long},
		{int64(1), dtype.LongLong},
		{celsius(20), dtype.Double},
	}
	for _, tc := range cases {
		d, err := source.ClassifyScalar(tc.in)
		require.NoError(t, err, "%T", tc.in)
		assert.Equal(t, tc.want, d.Kind(), "%T", tc.in)
	}
}

// TestClassifyScalar_Unsupported ensures values outside the set fail with the sentinel.
func TestClassifyScalar_Unsupported(t *testing.T) {
	for _, v := range []any{nil, complex(1, 1), big.NewInt(1), uint32(4), "text", []int{1}} {
		_, err := source.ClassifyScalar(v)
		assert.ErrorIs(t, err, source.ErrUnsupportedScalarKind, "%T", v)
	}
}

// TestClassify_NilPointer verifies typed nil pointers never become array nodes.
func TestClassify_NilPointer(t *testing.T) {
	var arr *fakeArray
	n := source.Classify(arr)
	require.IsType(t, source.UnclassifiableNode{}, n)
	assert.Nil(t, n.Value().(*fakeArray))

	_, ok := source.Classify(&fakeArray{shape: []int{2}}).(source.ArrayNode)
	assert.True(t, ok, "non-nil pointers still classify as arrays")
}
