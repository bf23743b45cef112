package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal menghitung pemanggilan operasi statistik per hasil
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grade_stats_requests_total",
		Help: "Total statistics operations by operation and result",
	}, []string{"operation", "result"})

	duration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grade_stats_duration_seconds",
		Help:    "Statistics operation duration in seconds, dataset loading included",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"operation"})

	quarantinedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grade_dataset_rejected_rows_total",
		Help: "Rows rejected while ingesting uploaded datasets",
	})
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Observe records one operation. Use as: defer metrics.Observe("global", time.Now(), &result).
func Observe(operation string, start time.Time, result *string) {
	duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(operation, *result).Inc()
}

func AddRejectedRows(n int) {
	if n > 0 {
		quarantinedRows.Add(float64(n))
	}
}
