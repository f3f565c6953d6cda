package services

//go:generate mockgen -source=convert.go -destination=convert_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
)

// ExchangeClient looks up rates on one exchange.
type ExchangeClient interface {
	Exchange() models.Exchange
	GetDirectRate(ctx context.Context, from, to string, opts models.RateOptions) (models.ExchangeRate, error)
	GetNonDirectRate(ctx context.Context, from, to string) (models.ExchangeRate, error)
}

// ConvertService converts amounts using the first exchange that knows the pair.
type ConvertService struct {
	clients map[models.Exchange]ExchangeClient
	order   []models.Exchange
	metrics *metrics.Metrics
}

// NewConvertService creates a new service instance.
// Exchanges are tried in the order the clients are given.
func NewConvertService(m *metrics.Metrics, clients ...ExchangeClient) *ConvertService {
	svc := &ConvertService{
		clients: make(map[models.Exchange]ExchangeClient, len(clients)),
		order:   make([]models.Exchange, 0, len(clients)),
		metrics: m,
	}
	for _, client := range clients {
		exchange := client.Exchange()
		if _, ok := svc.clients[exchange]; ok {
			continue
		}
		svc.clients[exchange] = client
		svc.order = append(svc.order, exchange)
	}
	return svc
}

// Exchanges returns the configured exchanges in lookup order.
func (svc *ConvertService) Exchanges() []models.Exchange {
	return append([]models.Exchange(nil), svc.order...)
}

// Convert converts amount from one currency to another.
// A nil exchange means every configured exchange, in order. Direct rates are tried on all of them
// before any non-direct rate is composed.
func (svc *ConvertService) Convert(
	ctx context.Context,
	from, to string,
	exchange *models.Exchange,
	amount decimal.Decimal,
	opts models.RateOptions,
) (conversion models.Conversion, err error) {
	defer func() {
		svc.observe(exchange, conversion, err)
	}()

	clients, err := svc.clientsFor(exchange)
	if err != nil {
		return models.Conversion{}, err
	}

	rate, errs := svc.firstRate(ctx, clients, func(c ExchangeClient) (models.ExchangeRate, error) {
		return c.GetDirectRate(ctx, from, to, opts)
	})
	if errs != nil {
		rate, errs = svc.firstRate(ctx, clients, func(c ExchangeClient) (models.ExchangeRate, error) {
			return c.GetNonDirectRate(ctx, from, to)
		})
	}
	if errs != nil {
		err = handleErrors(errs)
		logger.Log.Infow("conversion failed",
			"from", from,
			"to", to,
			"error", err,
		)
		return models.Conversion{}, err
	}

	return models.NewConversion(amount, rate), nil
}

func (svc *ConvertService) clientsFor(exchange *models.Exchange) ([]ExchangeClient, error) {
	if exchange != nil {
		client, ok := svc.clients[*exchange]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not enabled", apperrors.ErrExchangeIsNotAvailable, *exchange)
		}
		return []ExchangeClient{client}, nil
	}

	clients := make([]ExchangeClient, 0, len(svc.order))
	for _, e := range svc.order {
		clients = append(clients, svc.clients[e])
	}
	return clients, nil
}

// firstRate returns the first rate found, or every error met on the way.
// A non-nil error slice, even an empty one, means no rate was found.
func (svc *ConvertService) firstRate(
	ctx context.Context,
	clients []ExchangeClient,
	lookup func(ExchangeClient) (models.ExchangeRate, error),
) (models.ExchangeRate, []error) {
	errs := make([]error, 0, len(clients))
	for _, client := range clients {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("%s: %w: %w", client.Exchange(), apperrors.ErrExchangeIsNotAvailable, ctx.Err()))
			break
		}
		rate, err := lookup(client)
		if err == nil {
			return rate, nil
		}
		logger.Log.Debugw("exchange failed", "exchange", client.Exchange(), "error", err)
		errs = append(errs, err)
	}
	return models.ExchangeRate{}, errs
}

// handleErrors reduces per-exchange failures to one error.
// Only homogeneous sets keep their kind; a mix of kinds is unexpected and reported as ErrApplication.
func handleErrors(errs []error) error {
	switch {
	case len(errs) == 0:
		return fmt.Errorf("%w: no exchange was queried", apperrors.ErrApplication)
	case len(errs) == 1:
		return errs[0]
	case all(errs, apperrors.ErrExchangeNotFound):
		return apperrors.NewAggregateError(apperrors.ErrExchangeNotFound, errs)
	case all(errs, apperrors.ErrExchangeIsNotAvailable):
		return apperrors.NewAggregateError(apperrors.ErrExchangeIsNotAvailable, errs)
	default:
		return apperrors.NewAggregateError(apperrors.ErrApplication, errs)
	}
}

func all(errs []error, target error) bool {
	for _, err := range errs {
		if !errors.Is(err, target) || errors.Is(err, apperrors.ErrApplication) {
			return false
		}
	}
	return true
}

func (svc *ConvertService) observe(requested *models.Exchange, conversion models.Conversion, err error) {
	if svc.metrics == nil {
		return
	}
	label := "all"
	switch {
	case err == nil:
		label = string(conversion.Exchange)
	case requested != nil:
		label = string(*requested)
	}
	svc.metrics.ConversionsTotal.WithLabelValues(label, metrics.Outcome(err)).Inc()
}
