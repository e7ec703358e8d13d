// SPDX-License-Identifier: MIT

// Command ndinfer builds an array from a YAML or JSON document and prints
// the discovered element type and shape.
//
// Usage:
//
//	ndinfer [file|-] [--dtype f8] [--min-depth N] [--max-depth N] [--values]
//	ndinfer dtypes
//
// Sequences tagged !tuple are record tuples:
//
//	- !tuple [1.5, 2]
//	- !tuple [2.5, 3]
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
