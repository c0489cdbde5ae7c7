package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mailgun_manager"

var (
	// httpRequestsTotal counts requests by method, route, and status.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	// httpRequestDurationSeconds observes request latency in seconds.
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// providerCallsTotal counts Mailgun API calls.
	// Labels:
	// - operation: "list_templates", "list_mailing_lists", "list_members", "send_message"
	// - outcome:   "success", "provider_error", "transport_error"
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mailgun",
			Name:      "calls_total",
			Help:      "Total number of Mailgun API calls by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// sendsTotal counts send requests by kind ("test" or "live") and outcome.
	sendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "send",
			Name:      "requests_total",
			Help:      "Total number of send requests by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTP records one finished HTTP request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, code).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}

// ObserveProviderCall records the outcome of one Mailgun API call.
func ObserveProviderCall(operation string, err error) {
	providerCallsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}

// ObserveSend records the outcome of one send request.
func ObserveSend(kind string, err error) {
	sendsTotal.WithLabelValues(kind, Outcome(err)).Inc()
}

// Outcome classifies an error into a low-cardinality label value.
func Outcome(err error) string {
	var providerErr *domain.ProviderError
	var transportErr *domain.TransportError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &providerErr):
		return "provider_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domain.ErrDomainNotFound),
		errors.Is(err, domain.ErrPrimaryDomainNotFound),
		errors.Is(err, domain.ErrNoAPIKey):
		return "not_found"
	default:
		return "error"
	}
}
