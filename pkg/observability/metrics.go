// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for screening operations. Both are optional; the resolution core
// runs with nil metrics and a nil tracer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScreeningMetrics holds all Prometheus metrics for the resolution core.
type ScreeningMetrics struct {
	// ResolutionsTotal counts batch verdicts by match type and confidence.
	ResolutionsTotal *prometheus.CounterVec

	// FuzzyScanSeconds observes the latency of full-index fuzzy scans.
	FuzzyScanSeconds prometheus.Histogram

	// MatchScore observes the score distribution of accepted fuzzy matches.
	MatchScore prometheus.Histogram

	// IndexEntries reports the number of canonical names in the live index.
	IndexEntries prometheus.Gauge
}

// DefaultScreeningMetrics creates metrics on the default registerer.
func DefaultScreeningMetrics() *ScreeningMetrics {
	return NewScreeningMetrics(prometheus.DefaultRegisterer)
}

// NewScreeningMetrics creates a new set of screening metrics.
func NewScreeningMetrics(reg prometheus.Registerer) *ScreeningMetrics {
	factory := promauto.With(reg)

	return &ScreeningMetrics{
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screening_resolutions_total",
				Help: "Total batch resolution verdicts by match type and confidence",
			},
			[]string{"match_type", "confidence"},
		),
		FuzzyScanSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screening_fuzzy_scan_seconds",
				Help:    "Latency of fuzzy scans over the full name index",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
		MatchScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screening_match_score",
				Help:    "Score distribution of accepted fuzzy matches",
				Buckets: []float64{80, 85, 90, 95, 100},
			},
		),
		IndexEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "screening_index_entries",
				Help: "Number of canonical names in the live name index",
			},
		),
	}
}
