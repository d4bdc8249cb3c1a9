// Package metrics exposes Prometheus instrumentation for the report
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder struct {
	requests  *prometheus.CounterVec
	publishes *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewRecorder registers the service collectors on the default registry.
func NewRecorder() *Recorder {
	return &Recorder{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Webhook deliveries by pipeline outcome.",
		}, []string{"outcome"}),
		publishes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "report_publishes_total",
			Help: "Report publish attempts by result.",
		}, []string{"result"}),
		duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "End-to-end report pipeline duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Outcome labels for webhook_requests_total.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid_payload"
	OutcomeNotFound   = "record_not_found"
	OutcomePublishErr = "publish_failed"
	OutcomeBackWrite  = "backwrite_failed"
	OutcomeInternal   = "internal_error"
)

func (r *Recorder) ObserveRequest(outcome string, elapsed time.Duration) {
	r.requests.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}

func (r *Recorder) CountPublish(ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	r.publishes.WithLabelValues(result).Inc()
}
