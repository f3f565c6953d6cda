package models

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Exchange identifies a trading venue used as a rate source.
type Exchange string

// Supported exchanges.
const (
	Binance Exchange = "binance"
	KuCoin  Exchange = "kucoin"
)

// Exchanges lists every supported exchange in fallback order.
var Exchanges = []Exchange{Binance, KuCoin}

// ErrUnknownExchange is returned by ParseExchange for values outside Exchanges.
var ErrUnknownExchange = errors.New("unknown exchange")

// ParseExchange converts a case-insensitive name into an Exchange.
func ParseExchange(name string) (Exchange, error) {
	candidate := Exchange(strings.ToLower(strings.TrimSpace(name)))
	for _, e := range Exchanges {
		if e == candidate {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExchange, name)
}

var (
	// ErrExchangeMismatch is returned when merging rates quoted by different exchanges.
	ErrExchangeMismatch = errors.New("exchanges must match to merge rates")
	// ErrCurrencyMismatch is returned when merging rates that do not share a currency.
	ErrCurrencyMismatch = errors.New("currencies must match to merge rates")
)

// ExchangeRate is the price of one unit of CurrencyFrom in CurrencyTo on an exchange.
// Values are never mutated after construction.
type ExchangeRate struct {
	CurrencyFrom string
	CurrencyTo   string
	Exchange     Exchange
	Rate         decimal.Decimal
	UpdatedAt    time.Time

	// Intermediate holds the currencies a composed rate went through. Debug only.
	Intermediate []string

	// reversedFrom is the exact rate an inverted rate was computed from.
	reversedFrom decimal.NullDecimal
}

// ReciprocalDigits is the number of significant digits an inverted rate keeps.
const ReciprocalDigits = 28

// Valid reports whether the rate is usable for conversion.
func (r ExchangeRate) Valid() bool {
	return r.Rate.IsPositive() && r.CurrencyFrom != "" && r.CurrencyTo != "" && r.CurrencyFrom != r.CurrencyTo
}

// Equal compares currencies, exchange and rate. UpdatedAt and Intermediate are ignored.
func (r ExchangeRate) Equal(other ExchangeRate) bool {
	return r.CurrencyFrom == other.CurrencyFrom &&
		r.CurrencyTo == other.CurrencyTo &&
		r.Exchange == other.Exchange &&
		r.Rate.Equal(other.Rate)
}

// Reversed returns the rate of the opposite direction.
// Reversing a reversed rate gives back the exact original rate.
func (r ExchangeRate) Reversed() ExchangeRate {
	intermediate := make([]string, len(r.Intermediate))
	for i, c := range r.Intermediate {
		intermediate[len(r.Intermediate)-1-i] = c
	}

	rate := reciprocal(r.Rate)
	if r.reversedFrom.Valid {
		rate = r.reversedFrom.Decimal
	}
	return ExchangeRate{
		CurrencyFrom: r.CurrencyTo,
		CurrencyTo:   r.CurrencyFrom,
		Exchange:     r.Exchange,
		Rate:         rate,
		UpdatedAt:    r.UpdatedAt,
		Intermediate: intermediate,
		reversedFrom: decimal.NullDecimal{Decimal: r.Rate, Valid: true},
	}
}

// reciprocal returns 1/d rounded to ReciprocalDigits significant digits.
func reciprocal(d decimal.Decimal) decimal.Decimal {
	places := int32(ReciprocalDigits + 8)
	if e := leadingExponent(d); e > 0 {
		places += e
	}
	q := decimal.NewFromInt(1).DivRound(d, places)
	return q.Round(ReciprocalDigits - 1 - leadingExponent(q))
}

// leadingExponent is the power of ten of the first significant digit of d.
func leadingExponent(d decimal.Decimal) int32 {
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	return d.Exponent() + int32(digits) - 1
}

// Merge chains r (A->B) with other (B->C) into A->C.
func (r ExchangeRate) Merge(other ExchangeRate) (ExchangeRate, error) {
	if r.Exchange != other.Exchange {
		return ExchangeRate{}, fmt.Errorf("%w: %s and %s", ErrExchangeMismatch, r.Exchange, other.Exchange)
	}
	if r.CurrencyTo != other.CurrencyFrom {
		return ExchangeRate{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, r.CurrencyTo, other.CurrencyFrom)
	}

	updatedAt := r.UpdatedAt
	if other.UpdatedAt.After(updatedAt) {
		updatedAt = other.UpdatedAt
	}

	intermediate := make([]string, 0, len(r.Intermediate)+1)
	intermediate = append(intermediate, r.Intermediate...)
	intermediate = append(intermediate, r.CurrencyTo)

	return ExchangeRate{
		CurrencyFrom: r.CurrencyFrom,
		CurrencyTo:   other.CurrencyTo,
		Exchange:     r.Exchange,
		Rate:         r.Rate.Mul(other.Rate),
		UpdatedAt:    updatedAt,
		Intermediate: intermediate,
	}, nil
}

// Convert returns amount expressed in CurrencyTo.
func (r ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}

// String is used in logs.
func (r ExchangeRate) String() string {
	path := ""
	if len(r.Intermediate) > 0 {
		path = " via " + strings.Join(r.Intermediate, ",")
	}
	return fmt.Sprintf("%s %s->%s %s%s", r.Exchange, r.CurrencyFrom, r.CurrencyTo, r.Rate, path)
}

// RateOptions tunes a direct rate lookup.
type RateOptions struct {
	// CacheMaxSeconds accepts a cached rate not older than this. Zero disables cache reads.
	CacheMaxSeconds int
}

// Conversion is the outcome of converting an amount with a rate.
type Conversion struct {
	CurrencyFrom string
	CurrencyTo   string
	Exchange     Exchange
	Rate         decimal.Decimal
	UpdatedAt    time.Time
	Amount       decimal.Decimal
	Result       decimal.Decimal
}

// NewConversion converts amount with rate.
func NewConversion(amount decimal.Decimal, rate ExchangeRate) Conversion {
	return Conversion{
		CurrencyFrom: rate.CurrencyFrom,
		CurrencyTo:   rate.CurrencyTo,
		Exchange:     rate.Exchange,
		Rate:         rate.Rate,
		UpdatedAt:    rate.UpdatedAt,
		Amount:       amount,
		Result:       rate.Convert(amount),
	}
}
