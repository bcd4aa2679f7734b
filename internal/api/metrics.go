package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeTransportError = "transport_error"
	outcomeHTTPError      = "http_error"
	outcomeDecodeError    = "decode_error"
	outcomeSkipped        = "skipped"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics registers the client collectors on reg. A nil reg keeps the
// collectors unregistered, which is what tests and the default TUI run use.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brief_api_requests_total",
				Help: "Total number of backend API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brief_api_request_duration_seconds",
				Help:    "Backend API request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"endpoint"},
		),
	}
}

func (m *metrics) record(endpoint, outcome string, duration time.Duration) {
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != outcomeSkipped {
		m.duration.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}
