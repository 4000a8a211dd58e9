package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palettegen",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total HTTP requests, by route and status.",
	}, []string{"route", "status"})

	pixelsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "palettegen",
		Subsystem: "api",
		Name:      "pixels_processed_total",
		Help:      "Total pixels sampled from uploaded images after downsampling.",
	})

	aggregationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "palettegen",
		Subsystem: "api",
		Name:      "aggregation_duration_seconds",
		Help:      "Time spent bucketing the pixels of one image.",
		Buckets:   prometheus.DefBuckets,
	})

	bucketCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "palettegen",
		Subsystem: "api",
		Name:      "buckets",
		Help:      "Distinct colour buckets per image.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)
