package handlers

//go:generate mockgen -source=convert.go -destination=convert_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/shopspring/decimal"
)

// Converter converts amounts between currencies.
type Converter interface {
	Convert(
		ctx context.Context,
		from, to string,
		exchange *models.Exchange,
		amount decimal.Decimal,
		opts models.RateOptions,
	) (models.Conversion, error)
}

// NewConvertHandler handles currency conversion requests.
// @Summary Convert currency
// @Description Convert an amount using live exchange rates. Without an exchange every configured exchange is tried in order.
// @Tags convert
// @Accept json
// @Produce json
// @Param request body models.ConvertRequest true "Convert Request"
// @Success 200 {object} models.ConvertResponse "Conversion result"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Exchange not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Failure 502 {object} models.ErrorResponse "Exchanges are not available"
// @Router /api/v1/convert [post]
func NewConvertHandler(
	converter Converter,
	validate *validator.Validate,
	places int32,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req models.ConvertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
		normalize(&req)

		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: validationMessage(err)})
			return
		}
		if req.Amount.IsNegative() {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request: amount must not be negative"})
			return
		}

		var exchange *models.Exchange
		if req.Exchange != nil {
			parsed, err := models.ParseExchange(*req.Exchange)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request: exchange"})
				return
			}
			exchange = &parsed
		}

		var opts models.RateOptions
		if req.CacheMaxSeconds != nil {
			opts.CacheMaxSeconds = *req.CacheMaxSeconds
		}

		conversion, err := converter.Convert(ctx, req.CurrencyFrom, req.CurrencyTo, exchange, *req.Amount, opts)
		if err != nil {
			status := apperrors.HTTPStatus(err)
			if status == http.StatusInternalServerError {
				logger.Log.Errorw("conversion failed", "error", err)
			}
			writeJSON(w, status, models.ErrorResponse{Error: apperrors.Message(err)})
			return
		}

		writeJSON(w, http.StatusOK, models.NewConvertResponse(conversion, places))
	}
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func normalize(req *models.ConvertRequest) {
	req.CurrencyFrom = strings.ToUpper(strings.TrimSpace(req.CurrencyFrom))
	req.CurrencyTo = strings.ToUpper(strings.TrimSpace(req.CurrencyTo))
	if req.Exchange != nil {
		exchange := strings.ToLower(strings.TrimSpace(*req.Exchange))
		req.Exchange = &exchange
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid request"
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return "Invalid request: " + strings.Join(fields, ", ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
