// SPDX-License-Identifier: MIT

package storage

import "github.com/prometheus/client_golang/prometheus"

// Conversion results recorded by Metrics.
const (
	ConversionNoop = "noop"
	ConversionCopy = "copy"
)

// Metrics holds the storage collectors. A nil *Metrics records nothing.
type Metrics struct {
	AllocatedBytes prometheus.Counter
	Conversions    *prometheus.CounterVec
}

// NewMetrics creates the storage collectors and registers them with reg
// (prometheus.DefaultRegisterer when reg is nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		AllocatedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ndarray",
			Subsystem: "storage",
			Name:      "allocated_bytes_total",
			Help:      "Bytes allocated for array buffers",
		}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndarray",
			Subsystem: "storage",
			Name:      "conversions_total",
			Help:      "ConvertArray calls by result (noop, copy)",
		}, []string{"result"}),
	}
	reg.MustRegister(m.AllocatedBytes, m.Conversions)

	return m
}

func (m *Metrics) allocated(n int64) {
	if m == nil {
		return
	}
	m.AllocatedBytes.Add(float64(n))
}

func (m *Metrics) converted(result string) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(result).Inc()
}
