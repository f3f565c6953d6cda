package facades

import (
	"testing"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(from, to, value string) models.ExchangeRate {
	return models.ExchangeRate{
		CurrencyFrom: from,
		CurrencyTo:   to,
		Exchange:     models.KuCoin,
		Rate:         decimal.RequireFromString(value),
		UpdatedAt:    time.Unix(1700000000, 0),
	}
}

func TestBestRate(t *testing.T) {
	tests := []struct {
		name         string
		rates        []models.ExchangeRate
		wantRate     string
		wantPath     []string
		wantNotFound bool
	}{
		{
			name:     "single intermediate",
			rates:    []models.ExchangeRate{rate("A", "X", "2"), rate("X", "B", "3")},
			wantRate: "6",
			wantPath: []string{"X"},
		},
		{
			name: "picks highest composed rate",
			rates: []models.ExchangeRate{
				rate("A", "X", "1"), rate("X", "B", "5"),
				rate("A", "Y", "7"), rate("Y", "B", "1"),
			},
			wantRate: "7",
			wantPath: []string{"Y"},
		},
		{
			name: "direct entry wins",
			rates: []models.ExchangeRate{
				rate("A", "X", "10"), rate("X", "B", "10"),
				rate("A", "B", "4"),
			},
			wantRate: "4",
		},
		{
			name: "tie goes to first intermediate",
			rates: []models.ExchangeRate{
				rate("A", "Y", "2"), rate("Y", "B", "3"),
				rate("A", "X", "3"), rate("X", "B", "2"),
			},
			wantRate: "6",
			wantPath: []string{"X"},
		},
		{
			name:         "one leg only",
			rates:        []models.ExchangeRate{rate("A", "X", "2"), rate("Y", "B", "3")},
			wantNotFound: true,
		},
		{
			name:         "empty table",
			wantNotFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BestRate("A", "B", tt.rates)

			if tt.wantNotFound {
				assert.ErrorIs(t, err, apperrors.ErrExchangeNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", got.CurrencyFrom)
			assert.Equal(t, "B", got.CurrencyTo)
			assert.True(t, decimal.RequireFromString(tt.wantRate).Equal(got.Rate), "got %s", got.Rate)
			assert.Equal(t, len(tt.wantPath), len(got.Intermediate))
			for i := range tt.wantPath {
				assert.Equal(t, tt.wantPath[i], got.Intermediate[i])
			}
		})
	}
}
