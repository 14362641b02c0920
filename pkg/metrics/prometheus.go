package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	sourceErrors     *prometheus.CounterVec
	signalsDiscarded prometheus.Counter
	refreshDuration  prometheus.Histogram
	marketOpen       prometheus.Gauge
	subsystemUp      *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		sourceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradedeck_source_errors_total",
				Help: "Total number of failed upstream retrievals",
			},
			[]string{"source"},
		),
		signalsDiscarded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tradedeck_signals_discarded_total",
				Help: "Total number of signal records dropped by classification",
			},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradedeck_refresh_duration_seconds",
				Help:    "Duration of dashboard refresh cycles in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		marketOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradedeck_market_open",
				Help: "Whether the market is currently open (1) or closed (0)",
			},
		),
		subsystemUp: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tradedeck_subsystem_up",
				Help: "Whether a monitored subsystem is connected (1) or not (0)",
			},
			[]string{"subsystem"},
		),
	}
}

// RecordSourceError records a failed upstream retrieval.
func (r *Recorder) RecordSourceError(source string) {
	r.sourceErrors.WithLabelValues(source).Inc()
}

// RecordSignalsDiscarded records signal records dropped during classification.
func (r *Recorder) RecordSignalsDiscarded(n int) {
	if n > 0 {
		r.signalsDiscarded.Add(float64(n))
	}
}

// RecordRefreshDuration records refresh cycle latency in seconds.
func (r *Recorder) RecordRefreshDuration(seconds float64) {
	r.refreshDuration.Observe(seconds)
}

// SetMarketOpen records the current market state.
func (r *Recorder) SetMarketOpen(open bool) {
	if open {
		r.marketOpen.Set(1)
	} else {
		r.marketOpen.Set(0)
	}
}

// SetSubsystemUp records the derived state of a monitored subsystem.
func (r *Recorder) SetSubsystemUp(name string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	r.subsystemUp.WithLabelValues(name).Set(v)
}
