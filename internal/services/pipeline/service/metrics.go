package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the pipeline collectors
type Metrics struct {
	events   prometheus.Counter
	nilEvts  prometheus.Counter
	posts    prometheus.Counter
	runs     *prometheus.CounterVec
	unitTime prometheus.Histogram
}

// NewMetrics registers the pipeline collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		events: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowqfit",
			Subsystem: "pipeline",
			Name:      "events_total",
			Help:      "Events handed to a task step.",
		}),
		nilEvts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowqfit",
			Subsystem: "pipeline",
			Name:      "nil_events_total",
			Help:      "Steps whose input slot held no event.",
		}),
		posts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowqfit",
			Subsystem: "pipeline",
			Name:      "output_posts_total",
			Help:      "Posts into unit output slots.",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowqfit",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		unitTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flowqfit",
			Subsystem: "pipeline",
			Name:      "unit_duration_seconds",
			Help:      "Wall time of one processing unit.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}
