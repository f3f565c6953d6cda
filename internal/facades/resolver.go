package facades

import (
	"fmt"
	"sort"

	"github.com/sbilibin2017/gw-currency-converter/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// BestRate triangulates from->to out of rates oriented as from->X and X->to.
// A from->to entry wins outright. Otherwise every X present on both legs is merged
// and the highest composed rate is returned; ties go to the alphabetically first X.
func BestRate(from, to string, rates []models.ExchangeRate) (models.ExchangeRate, error) {
	fromLegs := make(map[string]models.ExchangeRate)
	toLegs := make(map[string]models.ExchangeRate)
	for _, r := range rates {
		if r.CurrencyFrom == from {
			fromLegs[r.CurrencyTo] = r
		}
		if r.CurrencyTo == to {
			toLegs[r.CurrencyFrom] = r
		}
	}

	if direct, ok := fromLegs[to]; ok {
		return direct, nil
	}

	candidates := make([]string, 0, len(fromLegs))
	for x := range fromLegs {
		if _, ok := toLegs[x]; ok && x != from {
			candidates = append(candidates, x)
		}
	}
	sort.Strings(candidates)

	var (
		best  models.ExchangeRate
		found bool
	)
	for _, x := range candidates {
		rate, err := fromLegs[x].Merge(toLegs[x])
		if err != nil {
			return models.ExchangeRate{}, fmt.Errorf("%w: %w", apperrors.ErrApplication, err)
		}
		if !found || rate.Rate.GreaterThan(best.Rate) {
			best, found = rate, true
		}
	}
	if !found {
		return models.ExchangeRate{}, fmt.Errorf("%w: no intermediate currency", apperrors.ErrExchangeNotFound)
	}
	return best, nil
}
