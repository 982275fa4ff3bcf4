package rate

import (
	"context"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the implicit base of every rate; it is never stored.
const BaseCurrency = "EUR"

type Rate struct {
	Currency    string          `json:"currency"`
	Value       decimal.Decimal `json:"value"`
	Diff        decimal.Decimal `json:"diff"`
	DiffPercent decimal.Decimal `json:"diff_percent"`
}

// DailyRates is the latest published day with its change against the day before.
type DailyRates struct {
	Date  string
	Rates map[string]Rate
}

type RateProvider interface {
	LatestRates(ctx context.Context) (*DailyRates, error)
}
