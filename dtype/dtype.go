// SPDX-License-Identifier: MIT

// Package dtype - element-type descriptors.
//
// Purpose:
//   - Describe one array element: kind, byte order, item size and, for
//     structured records, the field layout or fixed sub-array shape.
//   - Stay an immutable value type: constructors copy their slice inputs and
//     accessors hand out copies, so a DType can be shared across goroutines.
//
// Notes:
//   - Byte order is meaningful only for multi-byte numeric kinds and Unicode;
//     everything else reports NotApplicable.
//   - Native is resolved against the host in IsNativeByteOrder and Equivalent.

package dtype

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// MaxDims bounds the number of dimensions of any array.
const MaxDims = 32

// DefaultKind is the numeric type used for empty sequences unless configured otherwise.
const DefaultKind = Double

// ByteOrder is the storage byte order of a descriptor.
type ByteOrder uint8

const (
	// NotApplicable is used for single-byte and non-numeric kinds ('|').
	NotApplicable ByteOrder = iota
	// Native follows the host ('=').
	Native
	// Little is explicit little-endian ('<').
	Little
	// Big is explicit big-endian ('>').
	Big
)

// hostOrder is Little or Big depending on the running machine.
var hostOrder = func() ByteOrder {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return Little
	}
	return Big
}()

// HostOrder returns the concrete byte order of the running machine (Little or Big).
func HostOrder() ByteOrder { return hostOrder }

// Char returns the order character used in dtype strings.
func (o ByteOrder) Char() byte {
	switch o {
	case Native:
		return '='
	case Little:
		return '<'
	case Big:
		return '>'
	default:
		return '|'
	}
}

// resolve maps Native to the host order.
func (o ByteOrder) resolve() ByteOrder {
	if o == Native {
		return hostOrder
	}
	return o
}

// Field is one named member of a structured record.
type Field struct {
	Name   string // member name, unique within the record
	Type   DType  // member element type
	Offset int    // byte offset from the start of the record
}

// DType is an immutable element-type descriptor.
// The zero value is the NoType sentinel.
type DType struct {
	kind     Kind
	order    ByteOrder
	itemSize int
	char     bool    // one-byte String built from the 'c' code
	fields   []Field // non-empty for named records
	subShape []int   // non-empty for fixed sub-array records
	base     *DType  // element type of a sub-array record
}

// New returns the descriptor of a fixed-size kind in native byte order.
// Flexible kinds (String, Unicode, Void) get item size 0; use NewString,
// NewUnicode, NewRecord or NewSubarray to size them.
func New(k Kind) DType {
	if k >= numKinds {
		return DType{}
	}
	d := DType{kind: k, itemSize: kindTable[k].itemSize}
	if kindTable[k].ordered {
		d.order = Native
	}

	return d
}

// NewString returns a fixed-width byte-string descriptor of n bytes.
func NewString(n int) DType {
	if n < 0 {
		n = 0
	}
	return DType{kind: String, itemSize: n}
}

// NewUnicode returns a fixed-width text descriptor holding n code points.
func NewUnicode(n int) DType {
	if n < 0 {
		n = 0
	}
	return DType{kind: Unicode, order: Native, itemSize: 4 * n}
}

// NewChar returns the one-byte character descriptor ('c').
func NewChar() DType {
	return DType{kind: String, itemSize: 1, char: true}
}

// NewRecord returns a structured descriptor with the given fields.
// Fields whose Offset is zero (other than the first) are packed after the previous field.
// The item size is the end of the furthest field.
func NewRecord(fields ...Field) DType {
	fs := make([]Field, len(fields))
	end, next := 0, 0
	for i, f := range fields {
		if i > 0 && f.Offset == 0 {
			f.Offset = next
		}
		fs[i] = f
		next = f.Offset + f.Type.itemSize
		if next > end {
			end = next
		}
	}

	return DType{kind: Void, itemSize: end, fields: fs}
}

// NewSubarray returns a structured descriptor holding a fixed shape of base elements.
func NewSubarray(base DType, shape ...int) DType {
	n := 1
	for _, s := range shape {
		n *= s
	}
	b := base

	return DType{
		kind:     Void,
		itemSize: n * base.itemSize,
		subShape: append([]int(nil), shape...),
		base:     &b,
	}
}

// Kind returns the canonical type tag.
func (d DType) Kind() Kind { return d.kind }

// Order returns the declared byte order.
func (d DType) Order() ByteOrder { return d.order }

// ItemSize returns the size of one element in bytes.
func (d DType) ItemSize() int { return d.itemSize }

// IsChar reports whether d is the 'c' character type.
func (d DType) IsChar() bool { return d.char }

// IsUnset reports whether d is the NoType sentinel.
func (d DType) IsUnset() bool { return d.kind == NoType }

// HasFields reports whether d is a record with named fields.
func (d DType) HasFields() bool { return len(d.fields) > 0 }

// HasSubarray reports whether d carries a fixed sub-array shape.
func (d DType) HasSubarray() bool { return len(d.subShape) > 0 }

// IsStructured reports whether d is a record type (named fields or sub-array).
func (d DType) IsStructured() bool { return d.kind == Void && (d.HasFields() || d.HasSubarray()) }

// IsText reports whether d is String or Unicode.
func (d DType) IsText() bool { return d.kind.IsText() }

// Fields returns a copy of the record fields.
func (d DType) Fields() []Field { return append([]Field(nil), d.fields...) }

// Field returns the named record field.
func (d DType) Field(name string) (Field, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SubShape returns a copy of the fixed sub-array shape.
func (d DType) SubShape() []int { return append([]int(nil), d.subShape...) }

// Base returns the element type of a sub-array record, or d itself.
func (d DType) Base() DType {
	if d.base != nil {
		return *d.base
	}
	return d
}

// Chars returns the number of code points of a Unicode descriptor
// (or bytes of a String descriptor).
func (d DType) Chars() int {
	if d.kind == Unicode {
		return d.itemSize / 4
	}
	return d.itemSize
}

// WithOrder returns a copy of d using byte order o.
// Kinds without a meaningful byte order are returned unchanged.
func (d DType) WithOrder(o ByteOrder) DType {
	if d.order == NotApplicable {
		return d
	}
	d.order = o
	return d
}

// WithItemSize returns a copy of a flexible descriptor resized to n bytes.
func (d DType) WithItemSize(n int) DType {
	if !d.kind.IsFlexible() {
		return d
	}
	d.itemSize = n
	d.fields, d.subShape, d.base = nil, nil, nil
	return d
}

// NativeOrder returns a copy of d in native byte order.
func (d DType) NativeOrder() DType { return d.WithOrder(Native) }

// IsNativeByteOrder reports whether d's data can be read without swapping.
func (d DType) IsNativeByteOrder() bool {
	return d.order == NotApplicable || d.order.resolve() == hostOrder
}

// BinaryOrder returns the encoding/binary order used to read or write d.
func (d DType) BinaryOrder() binary.ByteOrder {
	if d.order.resolve() == Big {
		return binary.BigEndian
	}
	if d.order == NotApplicable && hostOrder == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Equivalent reports whether a and b describe the same element layout.
// Native and the matching explicit order compare equal.
func Equivalent(a, b DType) bool {
	if a.kind != b.kind || a.itemSize != b.itemSize || a.char != b.char {
		return false
	}
	if a.order.resolve() != b.order.resolve() {
		return false
	}
	if len(a.fields) != len(b.fields) || len(a.subShape) != len(b.subShape) {
		return false
	}
	for i := range a.fields {
		fa, fb := a.fields[i], b.fields[i]
		if fa.Name != fb.Name || fa.Offset != fb.Offset || !Equivalent(fa.Type, fb.Type) {
			return false
		}
	}
	for i := range a.subShape {
		if a.subShape[i] != b.subShape[i] {
			return false
		}
	}
	if a.HasSubarray() {
		return Equivalent(a.Base(), b.Base())
	}

	return true
}

// String renders d in the compact notation accepted by Parse
// ("<f8", "|b1", "|S5", "<U3", "c", "{x:<f8,y:<i4}", "(2,3)<f8").
func (d DType) String() string {
	switch {
	case d.kind == NoType:
		return "notype"
	case d.char:
		return "c"
	case d.HasFields():
		parts := make([]string, len(d.fields))
		for i, f := range d.fields {
			parts[i] = f.Name + ":" + f.Type.String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case d.HasSubarray():
		dims := make([]string, len(d.subShape))
		for i, s := range d.subShape {
			dims[i] = strconv.Itoa(s)
		}
		return "(" + strings.Join(dims, ",") + ")" + d.Base().String()
	case d.kind == Object:
		return "|O"
	case d.kind == Bool:
		return "|b1"
	case d.kind == Unicode:
		return fmt.Sprintf("%cU%d", d.order.resolve().Char(), d.Chars())
	}

	code := byte('i')
	switch {
	case d.kind == LongLong:
		code = 'q'
	case d.kind.IsFloat():
		code = 'f'
	case d.kind == String:
		code = 'S'
	case d.kind == Void:
		code = 'V'
	}

	return fmt.Sprintf("%c%c%d", d.order.resolve().Char(), code, d.itemSize)
}
