package apperrors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrExchangeNotFound indicates the pair has no rate on an exchange, even after reversal or triangulation.
	ErrExchangeNotFound = errors.New("exchange not found")

	// ErrExchangeIsNotAvailable indicates a transport failure, timeout or unexpected status from an exchange.
	ErrExchangeIsNotAvailable = errors.New("exchanges are not available")

	// ErrApplication indicates a bug: a state the conversion flow was not designed for.
	ErrApplication = errors.New("application error")
)

// IsExchangeError reports whether err belongs to the exchange error family.
func IsExchangeError(err error) bool {
	return errors.Is(err, ErrExchangeNotFound) || errors.Is(err, ErrExchangeIsNotAvailable)
}

// AggregateError reports one outcome for several per-exchange failures.
// It unwraps to Kind only, so errors.Is never matches the underlying failures.
type AggregateError struct {
	Kind error
	Errs []error
}

// NewAggregateError copies errs so the caller may reuse its slice.
func NewAggregateError(kind error, errs []error) *AggregateError {
	return &AggregateError{Kind: kind, Errs: append([]error(nil), errs...)}
}

func (e *AggregateError) Error() string {
	if len(e.Errs) == 0 {
		return e.Kind.Error()
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return e.Kind.Error() + ": [" + strings.Join(msgs, "; ") + "]"
}

func (e *AggregateError) Unwrap() error {
	return e.Kind
}

// Errors returns the underlying per-exchange failures.
func (e *AggregateError) Errors() []error {
	return e.Errs
}

// HTTPStatus maps an error to the status returned to API clients.
// ErrApplication is checked first: it never wraps the exchange kinds, but unknown errors must stay 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrApplication):
		return http.StatusInternalServerError
	case errors.Is(err, ErrExchangeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExchangeIsNotAvailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err.
func Message(err error) string {
	switch HTTPStatus(err) {
	case http.StatusNotFound:
		return "Exchange not found"
	case http.StatusBadGateway:
		return "Exchanges are not available"
	default:
		return "Internal server error"
	}
}
