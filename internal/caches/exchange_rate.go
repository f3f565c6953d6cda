package caches

//go:generate mockgen -source=exchange_rate.go -destination=exchange_rate_mock.go -package=caches

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
)

// Store is a TTL string store. A missing key is reported with ok == false and no error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// cachedRate is the stored form of an ExchangeRate.
// Rates are kept as strings and timestamps as epoch seconds.
type cachedRate struct {
	CurrencyFrom string   `json:"currency_from"`
	CurrencyTo   string   `json:"currency_to"`
	Exchange     string   `json:"exchange"`
	Rate         string   `json:"rate"`
	UpdatedAt    int64    `json:"updated_at"`
	Intermediate []string `json:"intermediate,omitempty"`
}

// ExchangeRateCache stores exchange rates under "from:to:exchange" keys.
type ExchangeRateCache struct {
	store Store
}

// NewExchangeRateCache creates a cache on top of store.
func NewExchangeRateCache(store Store) *ExchangeRateCache {
	return &ExchangeRateCache{store: store}
}

// Key builds the cache key of a pair on an exchange.
func Key(from, to string, exchange models.Exchange) string {
	return fmt.Sprintf("%s:%s:%s", from, to, exchange)
}

// Get returns the cached rate of from->to on exchange, if any.
func (c *ExchangeRateCache) Get(ctx context.Context, from, to string, exchange models.Exchange) (models.ExchangeRate, bool, error) {
	value, ok, err := c.store.Get(ctx, Key(from, to, exchange))
	if err != nil || !ok {
		return models.ExchangeRate{}, false, err
	}

	var cached cachedRate
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return models.ExchangeRate{}, false, fmt.Errorf("decoding cached rate: %w", err)
	}
	rate, err := decimal.NewFromString(cached.Rate)
	if err != nil {
		return models.ExchangeRate{}, false, fmt.Errorf("decoding cached rate %q: %w", cached.Rate, err)
	}

	result := models.ExchangeRate{
		CurrencyFrom: cached.CurrencyFrom,
		CurrencyTo:   cached.CurrencyTo,
		Exchange:     models.Exchange(cached.Exchange),
		Rate:         rate,
		UpdatedAt:    time.Unix(cached.UpdatedAt, 0),
		Intermediate: cached.Intermediate,
	}
	if !result.Valid() {
		return models.ExchangeRate{}, false, fmt.Errorf("invalid cached rate %s", result)
	}
	return result, true, nil
}

// Set stores rate under its own pair and exchange.
func (c *ExchangeRateCache) Set(ctx context.Context, rate models.ExchangeRate) error {
	value, err := json.Marshal(cachedRate{
		CurrencyFrom: rate.CurrencyFrom,
		CurrencyTo:   rate.CurrencyTo,
		Exchange:     string(rate.Exchange),
		Rate:         rate.Rate.String(),
		UpdatedAt:    rate.UpdatedAt.Unix(),
		Intermediate: rate.Intermediate,
	})
	if err != nil {
		return fmt.Errorf("encoding rate: %w", err)
	}
	return c.store.Set(ctx, Key(rate.CurrencyFrom, rate.CurrencyTo, rate.Exchange), string(value))
}
