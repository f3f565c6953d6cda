package facades

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
)

// BinanceBaseURL is the default Binance spot REST endpoint.
const BinanceBaseURL = "https://api4.binance.com"

// BinanceVenue reads spot prices from Binance.
type BinanceVenue struct {
	client *binance.Client
}

// NewBinanceVenue creates a venue backed by the Binance REST API.
func NewBinanceVenue(baseURL string, timeout time.Duration) *BinanceVenue {
	client := binance.NewClient("", "")
	client.BaseURL = baseURL
	client.HTTPClient = &http.Client{Timeout: timeout}
	return &BinanceVenue{client: client}
}

// Exchange implements Venue.
func (v *BinanceVenue) Exchange() models.Exchange {
	return models.Binance
}

// Price implements Venue with GET /api/v3/ticker/price?symbol=FROMTO.
func (v *BinanceVenue) Price(ctx context.Context, from, to string) (decimal.Decimal, error) {
	prices, err := v.client.NewListPricesService().Symbol(from + to).Do(ctx)
	if err != nil {
		return decimal.Zero, binanceError(err)
	}
	if len(prices) == 0 {
		return decimal.Zero, apperrors.ErrExchangeNotFound
	}

	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad price %q", apperrors.ErrExchangeIsNotAvailable, prices[0].Price)
	}
	return price, nil
}

// Tickers implements Venue with GET /api/v3/ticker/price.
// Binance symbols have no separator, so they are split around from and to.
// Any failure of the bulk table means the exchange is not available.
func (v *BinanceVenue) Tickers(ctx context.Context, from, to string) ([]Ticker, error) {
	prices, err := v.client.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrExchangeIsNotAvailable, err)
	}

	tickers := make([]Ticker, 0)
	for _, p := range prices {
		base, quote, ok := splitBinanceSymbol(p.Symbol, from, to)
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			continue
		}
		tickers = append(tickers, Ticker{Base: base, Quote: quote, Price: price})
	}
	return tickers, nil
}

// splitBinanceSymbol finds from or to at either end of symbol.
// Leveraged tokens such as BTCUPUSDT have no coherent rate and are rejected.
func splitBinanceSymbol(symbol, from, to string) (base, quote string, ok bool) {
	switch {
	case strings.HasPrefix(symbol, from) && len(symbol) > len(from):
		base, quote = from, strings.TrimPrefix(symbol, from)
	case strings.HasSuffix(symbol, from) && len(symbol) > len(from):
		base, quote = strings.TrimSuffix(symbol, from), from
	case strings.HasPrefix(symbol, to) && len(symbol) > len(to):
		base, quote = to, strings.TrimPrefix(symbol, to)
	case strings.HasSuffix(symbol, to) && len(symbol) > len(to):
		base, quote = strings.TrimSuffix(symbol, to), to
	default:
		return "", "", false
	}
	if isBinanceLeveraged(base, quote) {
		return "", "", false
	}
	return base, quote, true
}

// isBinanceLeveraged reports whether a split left an UP or DOWN marker on either side.
func isBinanceLeveraged(base, quote string) bool {
	for _, marker := range []string{"UP", "DOWN"} {
		if strings.HasSuffix(base, marker) && len(base)-len(marker) >= 3 {
			return true
		}
		if strings.HasPrefix(quote, marker) {
			return true
		}
	}
	return false
}

// binanceError classifies go-binance errors of a single pair lookup.
// Codes -1100..-1199 are request errors answered with HTTP 400, -1121 being "Invalid symbol".
func binanceError(err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code <= -1100 && apiErr.Code >= -1199 {
			return fmt.Errorf("%w: %s", apperrors.ErrExchangeNotFound, apiErr.Message)
		}
		return fmt.Errorf("%w: %s", apperrors.ErrExchangeIsNotAvailable, apiErr.Message)
	}
	return fmt.Errorf("%w: %w", apperrors.ErrExchangeIsNotAvailable, err)
}
