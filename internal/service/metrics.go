package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "store_orders",
			Subsystem: "service",
			Name:      "orders_created_total",
			Help:      "Total number of successfully created orders",
		},
	)

	orderCreateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "store_orders",
			Subsystem: "service",
			Name:      "order_create_duration_seconds",
			Help:      "Histogram of order creation durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "store_orders",
			Subsystem: "service",
			Name:      "status_transitions_total",
			Help:      "Total number of applied order status transitions",
		},
		[]string{"from", "to"},
	)

	eventPublishFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "store_orders",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Total number of order events that failed to publish",
		},
		[]string{"type"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "store_orders",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of order detail cache hits",
		},
	)

	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "store_orders",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of order detail cache misses",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersCreated,
		orderCreateDuration,
		statusTransitions,
		eventPublishFailures,
		cacheHits,
		cacheMisses,
	)
}
