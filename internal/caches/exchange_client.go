package caches

//go:generate mockgen -source=exchange_client.go -destination=exchange_client_mock.go -package=caches

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// RateClient looks up rates on one exchange.
type RateClient interface {
	Exchange() models.Exchange
	GetDirectRate(ctx context.Context, from, to string, opts models.RateOptions) (models.ExchangeRate, error)
	GetNonDirectRate(ctx context.Context, from, to string) (models.ExchangeRate, error)
}

// RateCache reads and writes exchange rates.
type RateCache interface {
	Get(ctx context.Context, from, to string, exchange models.Exchange) (models.ExchangeRate, bool, error)
	Set(ctx context.Context, rate models.ExchangeRate) error
}

// ExchangeClientCache serves direct rates from a cache when they are fresh enough.
// Cache failures are logged and treated as misses.
type ExchangeClientCache struct {
	next    RateClient
	cache   RateCache
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewExchangeClientCache wraps next with cache.
func NewExchangeClientCache(next RateClient, cache RateCache, m *metrics.Metrics) *ExchangeClientCache {
	return &ExchangeClientCache{
		next:    next,
		cache:   cache,
		metrics: m,
		now:     time.Now,
	}
}

// Exchange returns the exchange of the wrapped client.
func (c *ExchangeClientCache) Exchange() models.Exchange {
	return c.next.Exchange()
}

// GetDirectRate returns a cached rate not older than opts.CacheMaxSeconds.
// Zero CacheMaxSeconds skips the read. Every fresh rate is written back.
func (c *ExchangeClientCache) GetDirectRate(ctx context.Context, from, to string, opts models.RateOptions) (models.ExchangeRate, error) {
	if opts.CacheMaxSeconds > 0 {
		if rate, ok := c.fresh(ctx, from, to, time.Duration(opts.CacheMaxSeconds)*time.Second); ok {
			return rate, nil
		}
	}

	rate, err := c.next.GetDirectRate(ctx, from, to, opts)
	if err != nil {
		return rate, err
	}
	c.store(ctx, rate)
	return rate, nil
}

// GetNonDirectRate always calls through and caches the composed rate.
func (c *ExchangeClientCache) GetNonDirectRate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	rate, err := c.next.GetNonDirectRate(ctx, from, to)
	if err != nil {
		return rate, err
	}
	c.store(ctx, rate)
	return rate, nil
}

func (c *ExchangeClientCache) fresh(ctx context.Context, from, to string, maxAge time.Duration) (models.ExchangeRate, bool) {
	exchange := c.next.Exchange()
	rate, ok, err := c.cache.Get(ctx, from, to, exchange)
	switch {
	case err != nil:
		logger.Log.Warnw("rate cache read failed",
			"exchange", exchange,
			"from", from,
			"to", to,
			"error", err,
		)
		c.lookup(exchange, "error")
		return models.ExchangeRate{}, false
	case !ok:
		c.lookup(exchange, "miss")
		return models.ExchangeRate{}, false
	case rate.UpdatedAt.Add(maxAge).Before(c.now()):
		c.lookup(exchange, "stale")
		return models.ExchangeRate{}, false
	}

	c.lookup(exchange, "hit")
	return rate, true
}

func (c *ExchangeClientCache) store(ctx context.Context, rate models.ExchangeRate) {
	if err := c.cache.Set(ctx, rate); err != nil {
		logger.Log.Warnw("rate cache write failed",
			"exchange", rate.Exchange,
			"from", rate.CurrencyFrom,
			"to", rate.CurrencyTo,
			"error", err,
		)
	}
}

func (c *ExchangeClientCache) lookup(exchange models.Exchange, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheLookupsTotal.WithLabelValues(string(exchange), result).Inc()
}
