// SPDX-License-Identifier: MIT

package storage

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/katalvlaran/ndarray/dtype"
)

// decode reads one element of type dt from b (len(b) >= dt.ItemSize()).
//
//	Bool -> bool, Byte -> int8, Short -> int16, Int -> int32,
//	Long/LongLong -> int64, Float -> float32, Double -> float64,
//	String/Unicode -> string (trailing NULs dropped),
//	record -> []any in field order, sub-array -> flat []any,
//	plain Void -> []byte copy.
func decode(dt dtype.DType, b []byte) any {
	order := dt.BinaryOrder()
	switch dt.Kind() {
	case dtype.Bool:
		return b[0] != 0
	case dtype.Byte:
		return int8(b[0])
	case dtype.Short:
		return int16(order.Uint16(b))
	case dtype.Int:
		return int32(order.Uint32(b))
	case dtype.Long, dtype.LongLong:
		return int64(order.Uint64(b))
	case dtype.Float:
		return math.Float32frombits(order.Uint32(b))
	case dtype.Double:
		return math.Float64frombits(order.Uint64(b))
	case dtype.String:
		return string(bytes.TrimRight(b[:dt.ItemSize()], "\x00"))
	case dtype.Unicode:
		runes := make([]rune, 0, dt.Chars())
		for i := 0; i < dt.Chars(); i++ {
			r := order.Uint32(b[4*i:])
			if r == 0 {
				break
			}
			runes = append(runes, rune(r))
		}
		return string(runes)
	case dtype.Void:
		switch {
		case dt.HasFields():
			fields := dt.Fields()
			out := make([]any, len(fields))
			for i, f := range fields {
				out[i] = decode(f.Type, b[f.Offset:])
			}
			return out
		case dt.HasSubarray():
			base := dt.Base()
			out := make([]any, dt.ItemSize()/max(1, base.ItemSize()))
			for i := range out {
				out[i] = decode(base, b[i*base.ItemSize():])
			}
			return out
		}
		return append([]byte(nil), b[:dt.ItemSize()]...)
	}

	panic(fmt.Sprintf("storage: decode of kind %v", dt.Kind()))
}

// encode writes v as one element of type dt into b.
// Numeric targets accept any Go bool, integer or float (floats are truncated
// toward zero for integer targets); text targets accept strings, byte slices
// and numbers (formatted with fmt); records accept a slice with one value
// per field.
func encode(dt dtype.DType, b []byte, v any) error {
	order := dt.BinaryOrder()
	k := dt.Kind()
	switch {
	case k == dtype.Bool:
		f, ok := asFloat(v)
		if !ok {
			return valueTypeError(v, dt)
		}
		b[0] = 0
		if f != 0 {
			b[0] = 1
		}
		return nil

	case k.IsInteger():
		n, ok := asInt(v)
		if !ok {
			return valueTypeError(v, dt)
		}
		switch k {
		case dtype.Byte:
			b[0] = byte(int8(n))
		case dtype.Short:
			order.PutUint16(b, uint16(int16(n)))
		case dtype.Int:
			order.PutUint32(b, uint32(int32(n)))
		default:
			order.PutUint64(b, uint64(n))
		}
		return nil

	case k.IsFloat():
		f, ok := asFloat(v)
		if !ok {
			return valueTypeError(v, dt)
		}
		if k == dtype.Float {
			order.PutUint32(b, math.Float32bits(float32(f)))
		} else {
			order.PutUint64(b, math.Float64bits(f))
		}
		return nil

	case k.IsText():
		s, ok := asText(v)
		if !ok {
			return valueTypeError(v, dt)
		}
		cell := b[:dt.ItemSize()]
		clear(cell)
		if k == dtype.String {
			copy(cell, s)
			return nil
		}
		for i := 0; i < dt.Chars() && len(s) > 0; i++ {
			r, size := utf8.DecodeRuneInString(s)
			order.PutUint32(cell[4*i:], uint32(r))
			s = s[size:]
		}
		return nil

	case k == dtype.Void:
		return encodeVoid(dt, b, v)
	}

	return valueTypeError(v, dt)
}

// encodeVoid writes record, sub-array and raw void elements.
func encodeVoid(dt dtype.DType, b []byte, v any) error {
	if !dt.IsStructured() {
		raw, ok := v.([]byte)
		if !ok {
			return valueTypeError(v, dt)
		}
		cell := b[:dt.ItemSize()]
		clear(cell)
		copy(cell, raw)
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return valueTypeError(v, dt)
	}
	if dt.HasFields() {
		fields := dt.Fields()
		if rv.Len() != len(fields) {
			return fmt.Errorf("record of %d fields from %d values: %w", len(fields), rv.Len(), ErrValueType)
		}
		for i, f := range fields {
			if err := encode(f.Type, b[f.Offset:], rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	base := dt.Base()
	n := dt.ItemSize() / max(1, base.ItemSize())
	if rv.Len() != n {
		return fmt.Errorf("sub-array of %d elements from %d values: %w", n, rv.Len(), ErrValueType)
	}
	for i := 0; i < n; i++ {
		if err := encode(base, b[i*base.ItemSize():], rv.Index(i).Interface()); err != nil {
			return err
		}
	}

	return nil
}

func valueTypeError(v any, dt dtype.DType) error {
	return fmt.Errorf("%T into %s: %w", v, dt, ErrValueType)
}

// asFloat converts Go bools and numbers to float64.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// asInt converts Go bools and numbers to int64, truncating floats.
func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), true
	}
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return int64(f), true
}

// asText converts strings, byte slices and numbers to a string.
func asText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), true
	}
	return "", false
}
