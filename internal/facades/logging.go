package facades

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"go.uber.org/zap"
)

// RateClient looks up rates on one exchange.
type RateClient interface {
	Exchange() models.Exchange
	GetDirectRate(ctx context.Context, from, to string, opts models.RateOptions) (models.ExchangeRate, error)
	GetNonDirectRate(ctx context.Context, from, to string) (models.ExchangeRate, error)
}

// loggingClient decorates a RateClient with logging
type loggingClient struct {
	next   RateClient
	logger *zap.SugaredLogger
}

// NewLoggingClient returns a RateClient that logs every lookup
func NewLoggingClient(logger *zap.SugaredLogger, next RateClient) RateClient {
	return &loggingClient{
		next:   next,
		logger: logger,
	}
}

func (c *loggingClient) Exchange() models.Exchange {
	return c.next.Exchange()
}

func (c *loggingClient) GetDirectRate(ctx context.Context, from, to string, opts models.RateOptions) (rate models.ExchangeRate, err error) {
	defer func(begin time.Time) {
		c.logger.Debugw("exchange lookup",
			"method", "get_direct_rate",
			"exchange", c.next.Exchange(),
			"from", from,
			"to", to,
			"cache_max_seconds", opts.CacheMaxSeconds,
			"rate", rate.Rate,
			"took", time.Since(begin),
			"error", err,
		)
	}(time.Now())
	return c.next.GetDirectRate(ctx, from, to, opts)
}

func (c *loggingClient) GetNonDirectRate(ctx context.Context, from, to string) (rate models.ExchangeRate, err error) {
	defer func(begin time.Time) {
		c.logger.Debugw("exchange lookup",
			"method", "get_non_direct_rate",
			"exchange", c.next.Exchange(),
			"from", from,
			"to", to,
			"rate", rate.Rate,
			"intermediate", rate.Intermediate,
			"took", time.Since(begin),
			"error", err,
		)
	}(time.Now())
	return c.next.GetNonDirectRate(ctx, from, to)
}
