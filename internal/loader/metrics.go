package loader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// itemsUpserted tracks menu entries written to the document store
	itemsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuloader_items_upserted_total",
			Help: "Total number of menu entries upserted",
		},
		[]string{"source"},
	)

	// loadAttempts tracks per-source load attempts
	loadAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuloader_load_attempts_total",
			Help: "Total number of source load attempts",
		},
		[]string{"source"},
	)

	// loadFailures tracks failed load attempts
	loadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuloader_load_failures_total",
			Help: "Total number of failed source load attempts",
		},
		[]string{"source"},
	)

	// sourcesExhausted tracks sources that fell back to an empty result
	sourcesExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuloader_sources_exhausted_total",
			Help: "Total number of sources that exhausted their retry budget",
		},
		[]string{"source"},
	)

	// loadDuration tracks how long each source took end to end
	loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menuloader_load_duration_seconds",
			Help:    "Source load duration in seconds, including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
)
