package facades

import (
	"context"
	"fmt"
	"strings"
	"time"

	api "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/api"
	spotmarket "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/generate/spot/market"
	sdktype "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/types"
	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
)

// KuCoinBaseURL is the default KuCoin spot REST endpoint.
const KuCoinBaseURL = "https://api.kucoin.com"

// KuCoinVenue reads spot prices from KuCoin.
type KuCoinVenue struct {
	market spotmarket.MarketAPI
}

// NewKuCoinVenue creates a venue backed by the KuCoin spot market API.
// Only public endpoints are used, so the client carries no credentials.
func NewKuCoinVenue(baseURL string, timeout time.Duration) *KuCoinVenue {
	transportOpt := sdktype.NewTransportOptionBuilder().
		SetTimeout(timeout).
		Build()

	option := sdktype.NewClientOptionBuilder().
		WithSpotEndpoint(strings.TrimRight(baseURL, "/")).
		WithTransportOption(transportOpt).
		Build()

	client := api.NewClient(option)
	return &KuCoinVenue{market: client.RestService().GetSpotService().GetMarketAPI()}
}

// Exchange implements Venue.
func (v *KuCoinVenue) Exchange() models.Exchange {
	return models.KuCoin
}

// Price implements Venue with the level 1 ticker of FROM-TO.
// KuCoin answers unknown symbols with empty data.
func (v *KuCoinVenue) Price(ctx context.Context, from, to string) (decimal.Decimal, error) {
	req := spotmarket.NewGetTickerReqBuilder().SetSymbol(from + "-" + to).Build()
	resp, err := v.market.GetTicker(req, ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: get ticker: %w", apperrors.ErrExchangeIsNotAvailable, err)
	}
	if resp == nil || resp.Price == "" {
		return decimal.Zero, apperrors.ErrExchangeNotFound
	}

	price, err := decimal.NewFromString(resp.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad price %q", apperrors.ErrExchangeIsNotAvailable, resp.Price)
	}
	return price, nil
}

// Tickers implements Venue with the all tickers snapshot.
// Any failure of the snapshot means the exchange is not available.
func (v *KuCoinVenue) Tickers(ctx context.Context, from, to string) ([]Ticker, error) {
	resp, err := v.market.GetAllTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: get all tickers: %w", apperrors.ErrExchangeIsNotAvailable, err)
	}

	tickers := make([]Ticker, 0)
	if resp == nil {
		return tickers, nil
	}
	for _, raw := range resp.Ticker {
		base, quote, ok := strings.Cut(raw.Symbol, "-")
		if !ok || isKuCoinLeveraged(base) {
			continue
		}
		if base != from && base != to && quote != from && quote != to {
			continue
		}
		if raw.Last == nil {
			continue
		}
		price, err := decimal.NewFromString(*raw.Last)
		if err != nil {
			continue
		}
		tickers = append(tickers, Ticker{Base: base, Quote: quote, Price: price})
	}
	return tickers, nil
}

// isKuCoinLeveraged matches leveraged tokens such as BTC3L or ETH3S.
func isKuCoinLeveraged(currency string) bool {
	n := len(currency)
	if n < 3 {
		return false
	}
	last, digit := currency[n-1], currency[n-2]
	return (last == 'L' || last == 'S') && digit >= '0' && digit <= '9'
}
