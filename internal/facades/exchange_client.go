package facades

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
)

// Ticker is a listed pair: one Base costs Price units of Quote.
type Ticker struct {
	Base  string
	Quote string
	Price decimal.Decimal
}

// Venue is the exchange specific part of an ExchangeClient: building requests and reading responses.
// Implementations classify failures as apperrors.ErrExchangeNotFound or apperrors.ErrExchangeIsNotAvailable.
type Venue interface {
	Exchange() models.Exchange

	// Price returns the price of one from in to.
	Price(ctx context.Context, from, to string) (decimal.Decimal, error)

	// Tickers returns the listed pairs that have from or to on either side.
	Tickers(ctx context.Context, from, to string) ([]Ticker, error)
}

// ExchangeClient resolves rates on a single exchange.
type ExchangeClient struct {
	venue Venue
	now   func() time.Time
}

// NewExchangeClient creates a client on top of a venue.
func NewExchangeClient(venue Venue) *ExchangeClient {
	return &ExchangeClient{
		venue: venue,
		now:   time.Now,
	}
}

// Exchange returns the exchange the client talks to.
func (c *ExchangeClient) Exchange() models.Exchange {
	return c.venue.Exchange()
}

// GetDirectRate looks up a listed pair. Exchanges often list only one direction of a pair,
// so an unknown from->to is retried once as to->from and reversed.
func (c *ExchangeClient) GetDirectRate(ctx context.Context, from, to string, _ models.RateOptions) (models.ExchangeRate, error) {
	rate, err := c.directRate(ctx, from, to)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrExchangeNotFound) {
		return models.ExchangeRate{}, err
	}

	rate, err = c.directRate(ctx, to, from)
	if err != nil {
		return models.ExchangeRate{}, err
	}
	return rate.Reversed(), nil
}

// GetNonDirectRate composes a rate through the intermediate currency that yields the best price.
func (c *ExchangeClient) GetNonDirectRate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	tickers, err := c.venue.Tickers(ctx, from, to)
	if err != nil {
		return models.ExchangeRate{}, c.wrap(err, from, to)
	}

	rate, err := BestRate(from, to, c.relatedRates(tickers, from, to))
	if err != nil {
		return models.ExchangeRate{}, c.wrap(err, from, to)
	}
	return rate, nil
}

func (c *ExchangeClient) directRate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	price, err := c.venue.Price(ctx, from, to)
	if err != nil {
		return models.ExchangeRate{}, c.wrap(err, from, to)
	}

	rate := models.ExchangeRate{
		CurrencyFrom: from,
		CurrencyTo:   to,
		Exchange:     c.venue.Exchange(),
		Rate:         price,
		UpdatedAt:    c.now(),
	}
	if !rate.Valid() {
		return models.ExchangeRate{}, c.wrap(fmt.Errorf("%w: price %s", apperrors.ErrExchangeNotFound, price), from, to)
	}
	return rate, nil
}

// relatedRates orients every ticker as from->X or X->to and drops unusable prices.
func (c *ExchangeClient) relatedRates(tickers []Ticker, from, to string) []models.ExchangeRate {
	now := c.now()
	rates := make([]models.ExchangeRate, 0, len(tickers))
	for _, t := range tickers {
		rate := models.ExchangeRate{
			CurrencyFrom: t.Base,
			CurrencyTo:   t.Quote,
			Exchange:     c.venue.Exchange(),
			Rate:         t.Price,
			UpdatedAt:    now,
		}
		if !rate.Valid() {
			continue
		}
		if rate.CurrencyTo == from || rate.CurrencyFrom == to {
			rate = rate.Reversed()
		}
		rates = append(rates, rate)
	}
	return rates
}

// wrap tags err with the exchange and pair. Unclassified venue errors are transport failures.
func (c *ExchangeClient) wrap(err error, from, to string) error {
	if !apperrors.IsExchangeError(err) && !errors.Is(err, apperrors.ErrApplication) {
		err = fmt.Errorf("%w: %w", apperrors.ErrExchangeIsNotAvailable, err)
	}
	return fmt.Errorf("%s %s->%s: %w", c.venue.Exchange(), from, to, err)
}
