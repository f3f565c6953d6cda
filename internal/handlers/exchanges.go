package handlers

//go:generate mockgen -source=exchanges.go -destination=exchanges_mock.go -package=handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// ExchangeLister lists the enabled exchanges.
type ExchangeLister interface {
	Exchanges() []models.Exchange
}

// ExchangesResponse lists exchanges in lookup order
// swagger:model ExchangesResponse
type ExchangesResponse struct {
	// example: ["binance","kucoin"]
	Exchanges []models.Exchange `json:"exchanges"`
}

// NewGetExchangesHandler returns the exchanges a conversion without an explicit exchange goes through.
// @Summary List exchanges
// @Description Lists enabled exchanges in the order they are tried
// @Tags convert
// @Produce json
// @Success 200 {object} handlers.ExchangesResponse
// @Router /api/v1/exchanges [get]
func NewGetExchangesHandler(lister ExchangeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exchanges := lister.Exchanges()
		if exchanges == nil {
			exchanges = []models.Exchange{}
		}
		writeJSON(w, http.StatusOK, ExchangesResponse{Exchanges: exchanges})
	}
}
