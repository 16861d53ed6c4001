package remap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/askiada/go-remap/pkg/remap")

var (
	// searchTotal counts searches by strategy and result (found, empty, error)
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remap_search_total",
		Help: "Total minimum terminal value searches by strategy and result",
	}, []string{"strategy", "result"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remap_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	}, []string{"strategy"})

	// unitsEvaluated counts ranges (split) or chunks (brute force) handed to workers
	unitsEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remap_search_units_total",
		Help: "Total work units evaluated by strategy",
	}, []string{"strategy"})

	valuesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remap_values_scanned_total",
		Help: "Total values traversed one by one by brute force searches",
	})
)
