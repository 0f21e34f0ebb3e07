package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lendhub/internal/activity"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

var (
	adapterCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lendhub_activity_adapter_calls_total",
		Help: "Total number of activity adapter calls by outcome",
	}, []string{"adapter", "operation", "outcome"})
	adapterDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lendhub_activity_adapter_duration_seconds",
		Help:    "Latency of activity adapter calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"adapter", "operation"})
	feedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lendhub_activity_feed_requests_total",
		Help: "Total number of activity feed requests by outcome",
	}, []string{"outcome"})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(adapterCallsTotal, adapterDuration, feedRequestsTotal)
}

// Handler serves the metrics gathered by registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Outcome classifies an adapter call error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

// ObserveAdapterCall records one adapter call.
func ObserveAdapterCall(adapter string, op activity.Operation, elapsed time.Duration, err error) {
	adapterCallsTotal.WithLabelValues(adapter, string(op), Outcome(err)).Inc()
	adapterDuration.WithLabelValues(adapter, string(op)).Observe(elapsed.Seconds())
}

// IncFeedRequest counts a served feed request. degraded marks a request
// answered with an empty page after the aggregation failed.
func IncFeedRequest(degraded bool) {
	if degraded {
		feedRequestsTotal.WithLabelValues("degraded").Inc()
		return
	}
	feedRequestsTotal.WithLabelValues(OutcomeOK).Inc()
}

// Observer adapts the package counters to activity.Observer.
type Observer struct{}

var _ activity.Observer = Observer{}

func (Observer) ObserveAdapterCall(adapter string, op activity.Operation, elapsed time.Duration, err error) {
	ObserveAdapterCall(adapter, op, elapsed, err)
}
