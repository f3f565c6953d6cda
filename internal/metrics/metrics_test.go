package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ExchangeRequestsTotal.WithLabelValues("binance", "get_direct_rate", "ok").Inc()
	m.ExchangeRequestDuration.WithLabelValues("binance", "get_direct_rate").Observe(0.1)
	m.CacheLookupsTotal.WithLabelValues("binance", "hit").Inc()
	m.ConversionsTotal.WithLabelValues("kucoin", "ok").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/convert", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("POST", "/api/v1/convert").Observe(0.2)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("binance", "hit")))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "ok"},
		{name: "not found", err: fmt.Errorf("binance: %w", apperrors.ErrExchangeNotFound), want: "not_found"},
		{name: "not available", err: apperrors.ErrExchangeIsNotAvailable, want: "not_available"},
		{name: "application", err: apperrors.NewAggregateError(apperrors.ErrApplication, []error{apperrors.ErrExchangeNotFound}), want: "error"},
		{name: "other", err: errors.New("boom"), want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}
