package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the training service.
type Metrics struct {
	AttemptsGraded prometheus.Counter
	DeedsUploaded  prometheus.Counter
	ScoreHistogram prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AttemptsGraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deedtrainer_attempts_graded_total",
			Help: "Total number of attempts graded",
		}),
		DeedsUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deedtrainer_deeds_uploaded_total",
			Help: "Total number of deed documents uploaded",
		}),
		ScoreHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "deedtrainer_attempt_score",
			Help:    "Distribution of graded attempt scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
}
