// SPDX-License-Identifier: MIT

// Package dtype: element-type kinds and the safe-cast table.
//
// Kinds are declared in lattice order. The numeric ladder
// Bool < Byte < Short < Int < Long < LongLong < Float < Double is followed by
// Object and then the extended (variable item size) kinds String, Unicode and
// Void. Promotion walks this order upward; see promote.go.
package dtype

import "fmt"

// Kind is the canonical element-type tag.
// The zero value NoType doubles as the "unset" sentinel in discovery calls.
type Kind uint8

const (
	// NoType marks an absent or not-yet-discovered element type.
	NoType Kind = iota
	// Bool is a one-byte boolean.
	Bool
	// Byte is a signed 8-bit integer.
	Byte
	// Short is a signed 16-bit integer.
	Short
	// Int is a signed 32-bit integer.
	Int
	// Long is the canonical host integer slot (signed 64-bit).
	Long
	// LongLong is a signed 64-bit integer kept distinct from Long.
	LongLong
	// Float is an IEEE-754 binary32.
	Float
	// Double is an IEEE-754 binary64.
	Double
	// Object holds arbitrary host values by reference.
	Object
	// String is fixed-width bytes.
	String
	// Unicode is fixed-width UTF-32 text (4 bytes per code point).
	Unicode
	// Void is a structured record (named fields and/or a fixed sub-array).
	Void

	numKinds
)

// kindInfo holds the static per-kind facts.
type kindInfo struct {
	name     string // long name used by String and Parse
	code     byte   // single-letter type code
	itemSize int    // fixed size in bytes; 0 for flexible kinds
	flexible bool   // item size is chosen per descriptor
	ordered  bool   // byte order is meaningful
}

var kindTable = [numKinds]kindInfo{
	NoType:   {name: "notype", code: 'V', itemSize: 0},
	Bool:     {name: "bool", code: '?', itemSize: 1},
	Byte:     {name: "int8", code: 'b', itemSize: 1},
	Short:    {name: "int16", code: 'h', itemSize: 2, ordered: true},
	Int:      {name: "int32", code: 'i', itemSize: 4, ordered: true},
	Long:     {name: "long", code: 'l', itemSize: 8, ordered: true},
	LongLong: {name: "int64", code: 'q', itemSize: 8, ordered: true},
	Float:    {name: "float32", code: 'f', itemSize: 4, ordered: true},
	Double:   {name: "float64", code: 'd', itemSize: 8, ordered: true},
	Object:   {name: "object", code: 'O', itemSize: 8},
	String:   {name: "string", code: 'S', flexible: true},
	Unicode:  {name: "unicode", code: 'U', flexible: true, ordered: true},
	Void:     {name: "void", code: 'V', flexible: true},
}

// String returns the long kind name ("float64", "long", ...).
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kindTable[k].name
}

// Code returns the single-letter type code of k.
func (k Kind) Code() byte {
	if k >= numKinds {
		return '?'
	}

	return kindTable[k].code
}

// IsNumeric reports whether k is on the numeric ladder (Bool..Double).
func (k Kind) IsNumeric() bool { return k >= Bool && k <= Double }

// IsInteger reports whether k is a signed integer kind.
func (k Kind) IsInteger() bool { return k >= Byte && k <= LongLong }

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool { return k == Float || k == Double }

// IsText reports whether k is String or Unicode.
func (k Kind) IsText() bool { return k == String || k == Unicode }

// IsFlexible reports whether the item size of k is chosen per descriptor.
func (k Kind) IsFlexible() bool { return k < numKinds && kindTable[k].flexible }

// safeCasts[from] lists the kinds from can be assigned to without loss.
// Every numeric kind also casts safely to Object, which is handled in CanCastSafely.
var safeCasts = [numKinds][]Kind{
	Bool:     {Bool, Byte, Short, Int, Long, LongLong, Float, Double},
	Byte:     {Byte, Short, Int, Long, LongLong, Float, Double},
	Short:    {Short, Int, Long, LongLong, Float, Double},
	Int:      {Int, Long, LongLong, Double},
	Long:     {Long, LongLong, Double},
	LongLong: {Long, LongLong, Double},
	Float:    {Float, Double},
	Double:   {Double},
}

// CanCastSafely reports whether every value of kind from is representable in kind to.
// Complexity: O(1) (table scan of at most 8 entries).
func CanCastSafely(from, to Kind) bool {
	if from == to {
		return true
	}
	if to == Object {
		return from != NoType
	}
	if from >= numKinds || to >= numKinds {
		return false
	}
	if from == String && to == Unicode {
		return true
	}
	for _, k := range safeCasts[from] {
		if k == to {
			return true
		}
	}

	return false
}
