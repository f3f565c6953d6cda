package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRate(from, to string, exchange models.Exchange, value int64) models.ExchangeRate {
	return models.ExchangeRate{
		CurrencyFrom: from,
		CurrencyTo:   to,
		Exchange:     exchange,
		Rate:         decimal.NewFromInt(value),
		UpdatedAt:    time.Unix(1700000000, 0),
	}
}

func notFound(exchange models.Exchange) error {
	return fmt.Errorf("%s A->B: %w", exchange, apperrors.ErrExchangeNotFound)
}

func notAvailable(exchange models.Exchange) error {
	return fmt.Errorf("%s A->B: %w: timeout", exchange, apperrors.ErrExchangeIsNotAvailable)
}

func newMockClients(ctrl *gomock.Controller) (*MockExchangeClient, *MockExchangeClient) {
	binance := NewMockExchangeClient(ctrl)
	binance.EXPECT().Exchange().Return(models.Binance).AnyTimes()
	kucoin := NewMockExchangeClient(ctrl)
	kucoin.EXPECT().Exchange().Return(models.KuCoin).AnyTimes()
	return binance, kucoin
}

func TestConvertService_Convert(t *testing.T) {
	ctx := context.Background()
	opts := models.RateOptions{CacheMaxSeconds: 60}
	kucoinOnly := models.KuCoin

	tests := []struct {
		name         string
		exchange     *models.Exchange
		setupMocks   func(binance, kucoin *MockExchangeClient)
		wantExchange models.Exchange
		wantResult   string
		wantErrIs    error
		wantNotErrIs error
	}{
		{
			name: "first exchange direct",
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				binance.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(newRate("A", "B", models.Binance, 5), nil)
			},
			wantExchange: models.Binance,
			wantResult:   "50",
		},
		{
			name: "falls back to second exchange",
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				gomock.InOrder(
					binance.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notFound(models.Binance)),
					kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(newRate("A", "B", models.KuCoin, 4), nil),
				)
			},
			wantExchange: models.KuCoin,
			wantResult:   "40",
		},
		{
			name: "direct pass on every exchange before non direct",
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				gomock.InOrder(
					binance.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notFound(models.Binance)),
					kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notAvailable(models.KuCoin)),
					binance.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(newRate("A", "B", models.Binance, 6), nil),
				)
			},
			wantExchange: models.Binance,
			wantResult:   "60",
		},
		{
			name: "all not found",
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				binance.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notFound(models.Binance))
				kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notFound(models.KuCoin))
				binance.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notFound(models.Binance))
				kucoin.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notFound(models.KuCoin))
			},
			wantErrIs:    apperrors.ErrExchangeNotFound,
			wantNotErrIs: apperrors.ErrApplication,
		},
		{
			name: "all not available",
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				binance.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notAvailable(models.Binance))
				kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notAvailable(models.KuCoin))
				binance.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notAvailable(models.Binance))
				kucoin.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notAvailable(models.KuCoin))
			},
			wantErrIs:    apperrors.ErrExchangeIsNotAvailable,
			wantNotErrIs: apperrors.ErrExchangeNotFound,
		},
		{
			name: "mixed kinds",
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				binance.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notFound(models.Binance))
				kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notAvailable(models.KuCoin))
				binance.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notFound(models.Binance))
				kucoin.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notAvailable(models.KuCoin))
			},
			wantErrIs:    apperrors.ErrApplication,
			wantNotErrIs: apperrors.ErrExchangeNotFound,
		},
		{
			name:     "single exchange error is returned as is",
			exchange: &kucoinOnly,
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(models.ExchangeRate{}, notAvailable(models.KuCoin))
				kucoin.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notFound(models.KuCoin))
			},
			wantErrIs:    apperrors.ErrExchangeNotFound,
			wantNotErrIs: apperrors.ErrExchangeIsNotAvailable,
		},
		{
			name:     "requested exchange only",
			exchange: &kucoinOnly,
			setupMocks: func(binance, kucoin *MockExchangeClient) {
				kucoin.EXPECT().GetDirectRate(ctx, "A", "B", opts).Return(newRate("A", "B", models.KuCoin, 2), nil)
			},
			wantExchange: models.KuCoin,
			wantResult:   "20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			binance, kucoin := newMockClients(ctrl)
			tt.setupMocks(binance, kucoin)
			svc := NewConvertService(nil, binance, kucoin)

			conversion, err := svc.Convert(ctx, "A", "B", tt.exchange, decimal.NewFromInt(10), opts)

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.NotErrorIs(t, err, tt.wantNotErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExchange, conversion.Exchange)
			assert.Equal(t, "A", conversion.CurrencyFrom)
			assert.Equal(t, "B", conversion.CurrencyTo)
			assert.True(t, decimal.NewFromInt(10).Equal(conversion.Amount))
			assert.True(t, decimal.RequireFromString(tt.wantResult).Equal(conversion.Result), "got %s", conversion.Result)
		})
	}
}

func TestConvertService_AggregateCarriesErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	binance, kucoin := newMockClients(ctrl)
	binance.EXPECT().GetDirectRate(ctx, "A", "B", gomock.Any()).Return(models.ExchangeRate{}, notFound(models.Binance))
	kucoin.EXPECT().GetDirectRate(ctx, "A", "B", gomock.Any()).Return(models.ExchangeRate{}, notFound(models.KuCoin))
	binance.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notFound(models.Binance))
	kucoin.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notFound(models.KuCoin))

	svc := NewConvertService(nil, binance, kucoin)
	_, err := svc.Convert(ctx, "A", "B", nil, decimal.NewFromInt(1), models.RateOptions{})

	var aggregate *apperrors.AggregateError
	require.True(t, errors.As(err, &aggregate))
	assert.Len(t, aggregate.Errors(), 2)
	assert.Contains(t, err.Error(), "binance A->B")
	assert.Contains(t, err.Error(), "kucoin A->B")
}

func TestConvertService_DisabledExchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	binance, _ := newMockClients(ctrl)
	svc := NewConvertService(nil, binance)
	kucoin := models.KuCoin

	_, err := svc.Convert(context.Background(), "A", "B", &kucoin, decimal.NewFromInt(1), models.RateOptions{})

	assert.ErrorIs(t, err, apperrors.ErrExchangeIsNotAvailable)
}

func TestConvertService_NoExchanges(t *testing.T) {
	svc := NewConvertService(nil)

	_, err := svc.Convert(context.Background(), "A", "B", nil, decimal.NewFromInt(1), models.RateOptions{})

	assert.ErrorIs(t, err, apperrors.ErrApplication)
}

func TestConvertService_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	binance, kucoin := newMockClients(ctrl)
	svc := NewConvertService(nil, binance, kucoin)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Convert(ctx, "A", "B", nil, decimal.NewFromInt(1), models.RateOptions{})

	assert.ErrorIs(t, err, apperrors.ErrExchangeIsNotAvailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertService_Exchanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	binance, kucoin := newMockClients(ctrl)
	svc := NewConvertService(nil, kucoin, binance, kucoin)

	assert.Equal(t, []models.Exchange{models.KuCoin, models.Binance}, svc.Exchanges())
}

func TestConvertService_Metrics(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	binance, kucoin := newMockClients(ctrl)
	binance.EXPECT().GetDirectRate(ctx, "A", "B", gomock.Any()).Return(newRate("A", "B", models.Binance, 5), nil)
	kucoin.EXPECT().GetDirectRate(ctx, "A", "B", gomock.Any()).Return(models.ExchangeRate{}, notAvailable(models.KuCoin))
	kucoin.EXPECT().GetNonDirectRate(ctx, "A", "B").Return(models.ExchangeRate{}, notAvailable(models.KuCoin))

	m := metrics.New(prometheus.NewRegistry())
	svc := NewConvertService(m, binance, kucoin)
	kucoinOnly := models.KuCoin

	_, err := svc.Convert(ctx, "A", "B", nil, decimal.NewFromInt(1), models.RateOptions{})
	require.NoError(t, err)
	_, err = svc.Convert(ctx, "A", "B", &kucoinOnly, decimal.NewFromInt(1), models.RateOptions{})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("binance", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("kucoin", "not_available")))
}
