// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lomba_poster"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	CommentsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comments",
			Name:      "submitted_total",
			Help:      "Comment submissions by result",
		},
		[]string{"result"},
	)

	LikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "likes",
			Name:      "changes_total",
			Help:      "Like and unlike operations that changed state",
		},
		[]string{"action"},
	)

	ScoresSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "judging",
			Name:      "scores_submitted_total",
			Help:      "Judge scores written",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Redis cache lookups by cache name and outcome",
		},
		[]string{"cache", "outcome"},
	)
)

// Comment submission outcomes.
const (
	ResultAccepted = "accepted"
	ResultInvalid  = "invalid"
	ResultRejected = "rejected"
	ResultError    = "error"
)

func RecordCacheHit(cache string)  { CacheLookups.WithLabelValues(cache, "hit").Inc() }
func RecordCacheMiss(cache string) { CacheLookups.WithLabelValues(cache, "miss").Inc() }
