// SPDX-License-Identifier: MIT
// Package storage: functional configuration for Engine.
//
// Options are resolved once in NewEngine; an Engine never changes afterwards.
// Constructors panic only on nonsensical arguments (programmer error).

package storage

import (
	"io"
	"log/slog"
)

// DefaultMaxAllocBytes caps a single allocation (4 GiB).
const DefaultMaxAllocBytes int64 = 1 << 32

const (
	panicMaxBytesInvalid = "storage: WithMaxAllocBytes: limit must be > 0"
	panicLoggerNil       = "storage: WithLogger: logger must not be nil"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective Engine configuration.
type Options struct {
	maxBytes int64        // DefaultMaxAllocBytes
	logger   *slog.Logger // discard by default
	metrics  *Metrics     // nil disables metrics
}

// WithMaxAllocBytes limits the byte size of any single allocation.
// Panics when n <= 0.
func WithMaxAllocBytes(n int64) Option {
	if n <= 0 {
		panic(panicMaxBytesInvalid)
	}
	return func(o *Options) { o.maxBytes = n }
}

// WithLogger sets the structured logger used for allocation and conversion records.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}
	return func(o *Options) { o.logger = l }
}

// WithMetrics records allocations and conversions into m (see NewMetrics).
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		maxBytes: DefaultMaxAllocBytes,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
