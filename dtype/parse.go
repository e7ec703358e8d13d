// SPDX-License-Identifier: MIT

package dtype

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// namedKinds maps the accepted long names and single-letter codes to kinds.
var namedKinds = map[string]Kind{
	"bool": Bool, "?": Bool, "b1": Bool,
	"int8": Byte, "byte": Byte, "b": Byte, "i1": Byte,
	"int16": Short, "short": Short, "h": Short, "i2": Short,
	"int32": Int, "int": Int, "i": Int, "i4": Int,
	"long": Long, "l": Long, "i8": Long,
	"int64": LongLong, "longlong": LongLong, "q": LongLong, "q8": LongLong,
	"float32": Float, "float": Float, "f": Float, "f4": Float,
	"float64": Double, "double": Double, "d": Double, "f8": Double,
	"object": Object, "O": Object,
}

// Names returns the accepted type names in sorted order (for help output).
func Names() []string {
	out := make([]string, 0, len(namedKinds)+3)
	for n := range namedKinds {
		out = append(out, n)
	}
	out = append(out, "S<n>", "U<n>", "c")
	sort.Strings(out)

	return out
}

// Parse converts a type string into a descriptor.
// Accepted forms: a long name or code from namedKinds, "S<n>", "U<n>" and "c",
// each optionally prefixed by one of the byte-order characters '<', '>', '=', '|'.
//
// Errors:
//   - ErrUnknownType (wrapped with the offending text).
func Parse(s string) (DType, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return DType{}, fmt.Errorf("Parse(%q): %w", s, ErrUnknownType)
	}

	order, explicit := Native, false
	switch text[0] {
	case '<':
		order, explicit = Little, true
	case '>':
		order, explicit = Big, true
	case '=':
		order, explicit = Native, true
	case '|':
		order, explicit = NotApplicable, true
	}
	if explicit {
		text = text[1:]
	}

	var d DType
	switch {
	case text == "c":
		return NewChar(), nil
	case strings.HasPrefix(text, "S") || strings.HasPrefix(text, "U"):
		n, err := strconv.Atoi(text[1:])
		if err != nil || n < 0 {
			return DType{}, fmt.Errorf("Parse(%q): %w", s, ErrUnknownType)
		}
		if text[0] == 'S' {
			return NewString(n), nil
		}
		d = NewUnicode(n)
	default:
		k, ok := namedKinds[text]
		if !ok {
			return DType{}, fmt.Errorf("Parse(%q): %w", s, ErrUnknownType)
		}
		d = New(k)
	}
	if explicit && order != NotApplicable {
		d = d.WithOrder(order)
	}

	return d, nil
}

// MustParse is Parse for package-level literals; it panics on malformed input.
func MustParse(s string) DType {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
