// SPDX-License-Identifier: MIT

package storage

import "strings"

// Flags are the conversion requirements passed to Engine.ConvertArray.
type Flags uint8

const (
	// Fortran requests column-major (first index fastest) layout.
	Fortran Flags = 1 << iota
	// NotSwapped requests data in the host byte order.
	NotSwapped
	// ElementStrides requests every stride to be a multiple of the item size.
	ElementStrides
	// UpdateIfCopy ties a converted copy to its source; see Array.Resolve.
	UpdateIfCopy
	// ForceCast permits casts that may lose information.
	ForceCast
)

var flagNames = [...]string{"Fortran", "NotSwapped", "ElementStrides", "UpdateIfCopy", "ForceCast"}

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool { return f&x == x }

// String lists the set flags joined by '|' ("0" when empty).
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}

	return strings.Join(parts, "|")
}

// ArrayFlags describe the layout and access state of an Array.
type ArrayFlags uint8

const (
	// CContiguous marks row-major contiguous data.
	CContiguous ArrayFlags = 1 << iota
	// FContiguous marks column-major contiguous data.
	FContiguous
	// Writeable marks arrays that accept Set.
	Writeable
	// Aligned marks data whose offset and strides respect the element alignment.
	Aligned
	// OwnsData marks arrays that allocated their buffer (not views).
	OwnsData
)

var arrayFlagNames = [...]string{"C_CONTIGUOUS", "F_CONTIGUOUS", "WRITEABLE", "ALIGNED", "OWNDATA"}

// Has reports whether every bit of x is set in f.
func (f ArrayFlags) Has(x ArrayFlags) bool { return f&x == x }

// String lists the set flags joined by '|'.
func (f ArrayFlags) String() string {
	var parts []string
	for i, name := range arrayFlagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}

	return strings.Join(parts, "|")
}
