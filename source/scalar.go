// SPDX-License-Identifier: MIT

package source

import (
	"fmt"
	"reflect"

	"github.com/katalvlaran/ndarray/dtype"
)

// ClassifyScalar maps one host scalar to its minimal element type.
//
//	float64        -> Double
//	float32        -> Float
//	bool           -> Bool
//	int8, uint8    -> Byte
//	int16, int32   -> Long
//	int            -> Long
//	int64          -> LongLong
//
// Named types are classified by their underlying kind. Everything else
// (complex, wider unsigned integers, math/big values, non-scalars) fails with
// ErrUnsupportedScalarKind; coverage is extended by adding cases here.
func ClassifyScalar(v any) (dtype.DType, error) {
	if v == nil {
		return dtype.DType{}, fmt.Errorf("ClassifyScalar(nil): %w", ErrUnsupportedScalarKind)
	}

	var k dtype.Kind
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float64:
		k = dtype.Double
	case reflect.Float32:
		k = dtype.Float
	case reflect.Bool:
		k = dtype.Bool
	case reflect.Int8, reflect.Uint8:
		k = dtype.Byte
	case reflect.Int16, reflect.Int32, reflect.Int:
		k = dtype.Long
	case reflect.Int64:
		k = dtype.LongLong
	default:
		return dtype.DType{}, fmt.Errorf("ClassifyScalar(%T): %w", v, ErrUnsupportedScalarKind)
	}

	return dtype.New(k), nil
}
