// SPDX-License-Identifier: MIT
// Package construct: functional configuration for Builder.
//
// Options given to New become the Builder's defaults; options given to a
// single FromAny/CheckFromAny/FromArray call are applied on top of a copy of
// those defaults and never leak into the Builder.
//
// Constructors panic only on nonsensical values (programmer error).

package construct

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/ndarray/discover"
	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/storage"
)

const (
	panicDefaultTypeUnset = "construct: WithDefaultType: type must be set"
	panicResolverNil      = "construct: WithResolver: resolver must not be nil"
	panicLoggerNil        = "construct: WithLogger: logger must not be nil"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective construction policy.
type Options struct {
	// storage requirements, see storage.Flags
	fortran        bool
	notSwapped     bool
	elementStrides bool
	updateIfCopy   bool
	forceCast      bool

	scalarConversion bool // build 0-d arrays from scalars and text

	discovery discover.Config
	logger    *slog.Logger
	metrics   *Metrics
}

// WithFortranOrder lays out new arrays column-major.
func WithFortranOrder() Option { return func(o *Options) { o.fortran = true } }

// WithNativeByteOrder requires the result in host byte order.
func WithNativeByteOrder() Option { return func(o *Options) { o.notSwapped = true } }

// WithElementStrides requires every stride of the result to be a multiple of its item size.
func WithElementStrides() Option { return func(o *Options) { o.elementStrides = true } }

// WithUpdateSourceOnWrite ties a converted copy of an array source back to
// the source; see storage.Array.Resolve. Only valid for array sources.
func WithUpdateSourceOnWrite() Option { return func(o *Options) { o.updateIfCopy = true } }

// WithForceCast permits conversions that may lose information.
func WithForceCast() Option { return func(o *Options) { o.forceCast = true } }

// WithScalarConversion turns scalar and top-level text sources into 0-d arrays
// instead of failing with ErrScalarConversionUnsupported.
func WithScalarConversion() Option { return func(o *Options) { o.scalarConversion = true } }

// WithDefaultType sets the element type of empty sequences (dtype.Double by default).
// Panics when dt is unset.
func WithDefaultType(dt dtype.DType) Option {
	if dt.IsUnset() {
		panic(panicDefaultTypeUnset)
	}
	return func(o *Options) { o.discovery.DefaultType = dt }
}

// WithResolver types leaves that discovery cannot classify itself.
// Panics when r is nil.
func WithResolver(r discover.Resolver) Option {
	if r == nil {
		panic(panicResolverNil)
	}
	return func(o *Options) { o.discovery.DefaultResolver = r }
}

// WithLogger sets the structured logger for dispatch and rejection records.
// Panics when l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}
	return func(o *Options) { o.logger = l }
}

// WithMetrics records constructions into m (see NewMetrics).
func WithMetrics(m *Metrics) Option { return func(o *Options) { o.metrics = m } }

// storageFlags maps the requirements onto storage.Flags.
func (o Options) storageFlags() storage.Flags {
	var f storage.Flags
	if o.fortran {
		f |= storage.Fortran
	}
	if o.notSwapped {
		f |= storage.NotSwapped
	}
	if o.elementStrides {
		f |= storage.ElementStrides
	}
	if o.updateIfCopy {
		f |= storage.UpdateIfCopy
	}
	if o.forceCast {
		f |= storage.ForceCast
	}
	return f
}

// defaultOptions returns the documented zero-flag policy.
func defaultOptions() Options {
	return Options{
		discovery: discover.DefaultConfig(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// gatherOptions applies opts over base.
func gatherOptions(base Options, opts ...Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}
