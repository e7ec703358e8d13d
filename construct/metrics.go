// SPDX-License-Identifier: MIT

package construct

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/ndarray/discover"
	"github.com/katalvlaran/ndarray/source"
	"github.com/katalvlaran/ndarray/storage"
)

// Dispatch paths, used as the "path" label.
const (
	PathArray          = "array"
	PathSequence       = "sequence"
	PathScalar         = "scalar"
	PathUnclassifiable = "unclassifiable"
)

// OutcomeOK labels successful constructions.
const OutcomeOK = "ok"

// Metrics holds the construction collectors. A nil *Metrics records nothing.
type Metrics struct {
	Constructions *prometheus.CounterVec
	NDim          prometheus.Histogram
}

// NewMetrics creates the construction collectors and registers them with reg
// (prometheus.DefaultRegisterer when reg is nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Constructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndarray",
			Name:      "constructions_total",
			Help:      "Array constructions by dispatch path and outcome",
		}, []string{"path", "outcome"}),
		NDim: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ndarray",
			Name:      "construction_ndim",
			Help:      "Dimension count of constructed arrays",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8, 16, 32},
		}),
	}
	reg.MustRegister(m.Constructions, m.NDim)

	return m
}

// observe records one finished construction.
func (m *Metrics) observe(path string, a *storage.Array, err error) {
	if m == nil {
		return
	}
	m.Constructions.WithLabelValues(path, Outcome(err)).Inc()
	if err == nil {
		m.NDim.Observe(float64(a.NDim()))
	}
}

// outcomes maps sentinels to stable label values, most specific first.
var outcomes = []struct {
	err   error
	label string
}{
	{discover.ErrInconsistentShape, "inconsistent_shape"},
	{discover.ErrDepthExceeded, "depth_exceeded"},
	{discover.ErrDefaultTypeUnavailable, "default_type_unavailable"},
	{source.ErrUnsupportedScalarKind, "unsupported_scalar_kind"},
	{ErrInvalidDimensionCount, "invalid_dimension_count"},
	{ErrInvalidFlagCombination, "invalid_flag_combination"},
	{ErrScalarConversionUnsupported, "scalar_conversion_unsupported"},
	{ErrUnclassifiableSource, "unclassifiable_source"},
	{storage.ErrUnsafeCast, "unsafe_cast"},
	{storage.ErrAllocationTooLarge, "allocation_too_large"},
}

// Outcome returns the metric label for a construction result.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.label
		}
	}
	return "error"
}
