package models

import "github.com/shopspring/decimal"

// ConvertRequest represents the JSON body for a currency conversion
// swagger:model ConvertRequest
type ConvertRequest struct {
	// Source currency
	// required: true
	// example: BTC
	CurrencyFrom string `json:"currency_from" validate:"required,alphanum,max=20"`

	// Target currency
	// required: true
	// example: USDT
	CurrencyTo string `json:"currency_to" validate:"required,alphanum,max=20,nefield=CurrencyFrom"`

	// Exchange to use, null to try all configured exchanges
	// example: binance
	Exchange *string `json:"exchange" validate:"omitempty,oneof=binance kucoin"`

	// Amount to convert, as a decimal string or number
	// required: true
	// example: 10.5
	Amount *decimal.Decimal `json:"amount" validate:"required"`

	// Maximum age of a cached rate, in seconds
	// example: 60
	CacheMaxSeconds *int `json:"cache_max_seconds" validate:"omitempty,min=0"`
}

// ConvertResponse represents a successful conversion
// swagger:model ConvertResponse
type ConvertResponse struct {
	CurrencyFrom string          `json:"currency_from"`
	CurrencyTo   string          `json:"currency_to"`
	Exchange     Exchange        `json:"exchange"`
	Rate         decimal.Decimal `json:"rate"`
	Result       decimal.Decimal `json:"result"`
	// Rate timestamp in epoch seconds
	UpdatedAt int64 `json:"updated_at"`
}

// NewConvertResponse renders a conversion, rounding rate and result to places.
func NewConvertResponse(c Conversion, places int32) ConvertResponse {
	return ConvertResponse{
		CurrencyFrom: c.CurrencyFrom,
		CurrencyTo:   c.CurrencyTo,
		Exchange:     c.Exchange,
		Rate:         c.Rate.Round(places),
		Result:       c.Result.Round(places),
		UpdatedAt:    c.UpdatedAt.Unix(),
	}
}

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Exchange not found
	Error string `json:"error"`
}
