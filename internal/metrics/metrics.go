package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
)

// Metrics holds the converter collectors.
type Metrics struct {
	// Calls to exchanges by method and outcome
	ExchangeRequestsTotal   *prometheus.CounterVec
	ExchangeRequestDuration *prometheus.HistogramVec

	// Cache lookups of direct rates
	CacheLookupsTotal *prometheus.CounterVec

	// Finished conversions by outcome
	ConversionsTotal *prometheus.CounterVec

	// Inbound HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the collectors in reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExchangeRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_requests_total",
				Help: "Rate lookups sent to exchanges",
			},
			[]string{"exchange", "method", "outcome"},
		),
		ExchangeRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "exchange_request_duration_seconds",
				Help:    "Duration of rate lookups on exchanges",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"exchange", "method"},
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Direct rate cache lookups by result (hit, miss, stale, error)",
			},
			[]string{"exchange", "result"},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Finished conversions by exchange and outcome",
			},
			[]string{"exchange", "outcome"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Inbound HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Inbound HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Outcome labels an error for the *_total counters.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrApplication):
		return "error"
	case errors.Is(err, apperrors.ErrExchangeNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrExchangeIsNotAvailable):
		return "not_available"
	default:
		return "error"
	}
}
