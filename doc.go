// Package ndarray turns arbitrary host values into typed N-dimensional arrays.
//
// 🚀 What is ndarray?
//
//	A small construction engine that takes whatever the caller hands it and
//	decides what array it describes:
//		• Element types: a closed set of kinds, byte orders, records, sub-arrays
//		• Promotion: Bool < Byte < Short < Int < Long < LongLong < Float < Double < Object
//		• Discovery: nesting depth, shape and element type of nested sequences
//		• Construction: copy-or-view for arrays, depth bounds, scalar conversion
//		• Storage: strided byte buffers, Fortran/C layout, write-back copies
//
// ✨ Why choose ndarray?
//
//   - Predictable: every rejection is a sentinel error matched with errors.Is
//   - Observable: slog logging and Prometheus counters behind options
//   - Pluggable: anything implementing construct.Allocator can own the memory
//
// Under the hood, everything is organized under these subpackages:
//
//	dtype/       - element type descriptors, parsing and the promotion lattice
//	source/      - classification of host values into array/sequence/scalar/text nodes
//	discover/    - depth, shape and element-type discovery over source nodes
//	storage/     - reference storage engine: Array, Engine.Allocate/ConvertArray/CopyInto
//	construct/   - Builder.FromAny, CheckFromAny, FromArray
//	config/      - YAML configuration with validation and env overrides
//	cmd/ndinfer/ - CLI: infer the array a YAML/JSON document describes
//
// Quick example:
//
//	[[1, 2], [3, 4]]   →   long, ndim 2, shape [2 2]
//	[[1, 2], [3]]      →   discover.ErrInconsistentShape at dimension 1
//	[]                 →   float64, ndim 1, shape [0]
//
//	go get github.com/katalvlaran/ndarray/construct
package ndarray
