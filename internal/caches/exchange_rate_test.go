package caches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "BTC:USDT:binance", Key("BTC", "USDT", models.Binance))
}

func TestExchangeRateCache_Set(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	cache := NewExchangeRateCache(store)

	rate := models.ExchangeRate{
		CurrencyFrom: "AAA",
		CurrencyTo:   "BBB",
		Exchange:     models.KuCoin,
		Rate:         decimal.RequireFromString("0.123456789012345678"),
		UpdatedAt:    time.Unix(1700000000, 500),
		Intermediate: []string{"XXX"},
	}
	store.EXPECT().
		Set(gomock.Any(), "AAA:BBB:kucoin", `{"currency_from":"AAA","currency_to":"BBB","exchange":"kucoin","rate":"0.123456789012345678","updated_at":1700000000,"intermediate":["XXX"]}`).
		Return(nil)

	require.NoError(t, cache.Set(context.Background(), rate))
}

func TestExchangeRateCache_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	cache := NewExchangeRateCache(store)

	tests := []struct {
		name       string
		setupMocks func()
		wantOK     bool
		wantErr    bool
	}{
		{
			name: "hit",
			setupMocks: func() {
				store.EXPECT().Get(gomock.Any(), "BTC:USDT:binance").
					Return(`{"currency_from":"BTC","currency_to":"USDT","exchange":"binance","rate":"60000.5","updated_at":1700000000}`, true, nil)
			},
			wantOK: true,
		},
		{
			name: "miss",
			setupMocks: func() {
				store.EXPECT().Get(gomock.Any(), "BTC:USDT:binance").Return("", false, nil)
			},
		},
		{
			name: "store error",
			setupMocks: func() {
				store.EXPECT().Get(gomock.Any(), "BTC:USDT:binance").Return("", false, errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			name: "corrupt json",
			setupMocks: func() {
				store.EXPECT().Get(gomock.Any(), "BTC:USDT:binance").Return(`{"rate":`, true, nil)
			},
			wantErr: true,
		},
		{
			name: "corrupt rate",
			setupMocks: func() {
				store.EXPECT().Get(gomock.Any(), "BTC:USDT:binance").
					Return(`{"currency_from":"BTC","currency_to":"USDT","exchange":"binance","rate":"abc","updated_at":1}`, true, nil)
			},
			wantErr: true,
		},
		{
			name: "non positive rate",
			setupMocks: func() {
				store.EXPECT().Get(gomock.Any(), "BTC:USDT:binance").
					Return(`{"currency_from":"BTC","currency_to":"USDT","exchange":"binance","rate":"0","updated_at":1}`, true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			rate, ok, err := cache.Get(context.Background(), "BTC", "USDT", models.Binance)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "BTC", rate.CurrencyFrom)
				assert.Equal(t, "USDT", rate.CurrencyTo)
				assert.Equal(t, models.Binance, rate.Exchange)
				assert.True(t, decimal.RequireFromString("60000.5").Equal(rate.Rate))
				assert.Equal(t, int64(1700000000), rate.UpdatedAt.Unix())
			}
		})
	}
}

func TestExchangeRateCache_SetThenGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var stored string
	store := NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), "ETH:BTC:binance", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, value string) error {
			stored = value
			return nil
		})
	store.EXPECT().Get(gomock.Any(), "ETH:BTC:binance").
		DoAndReturn(func(_ context.Context, _ string) (string, bool, error) {
			return stored, true, nil
		})
	cache := NewExchangeRateCache(store)

	rate := models.ExchangeRate{
		CurrencyFrom: "ETH",
		CurrencyTo:   "BTC",
		Exchange:     models.Binance,
		Rate:         decimal.RequireFromString("0.0512345678901"),
		UpdatedAt:    time.Unix(1700000123, 0),
	}
	require.NoError(t, cache.Set(context.Background(), rate))

	got, ok, err := cache.Get(context.Background(), "ETH", "BTC", models.Binance)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rate.Equal(got))
	assert.True(t, rate.UpdatedAt.Equal(got.UpdatedAt))
}
