package facades

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// instrumentedClient decorates a RateClient with Prometheus metrics
type instrumentedClient struct {
	next    RateClient
	metrics *metrics.Metrics
}

// NewInstrumentedClient returns a RateClient that records request counts and durations
func NewInstrumentedClient(m *metrics.Metrics, next RateClient) RateClient {
	return &instrumentedClient{
		next:    next,
		metrics: m,
	}
}

func (c *instrumentedClient) Exchange() models.Exchange {
	return c.next.Exchange()
}

func (c *instrumentedClient) GetDirectRate(ctx context.Context, from, to string, opts models.RateOptions) (rate models.ExchangeRate, err error) {
	defer c.observe("get_direct_rate", time.Now(), &err)
	return c.next.GetDirectRate(ctx, from, to, opts)
}

func (c *instrumentedClient) GetNonDirectRate(ctx context.Context, from, to string) (rate models.ExchangeRate, err error) {
	defer c.observe("get_non_direct_rate", time.Now(), &err)
	return c.next.GetNonDirectRate(ctx, from, to)
}

func (c *instrumentedClient) observe(method string, begin time.Time, err *error) {
	exchange := string(c.next.Exchange())
	c.metrics.ExchangeRequestDuration.WithLabelValues(exchange, method).Observe(time.Since(begin).Seconds())
	c.metrics.ExchangeRequestsTotal.WithLabelValues(exchange, method, metrics.Outcome(*err)).Inc()
}
