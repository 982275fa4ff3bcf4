package rate

import (
	"github.com/infigaming-com/exchange-rates/ecb"
	"github.com/shopspring/decimal"
)

// DeltaPlaces is the number of decimal places kept for diff and diff_percent.
const DeltaPlaces = 4

var hundred = decimal.NewFromInt(100)

// ComputeDeltas pairs each currency of latest with its previous rate.
// Currencies missing from either snapshot are left out.
func ComputeDeltas(latest, previous ecb.Snapshot) (*DailyRates, error) {
	rates := make(map[string]Rate, len(latest.Rates))
	for currency, value := range latest.Rates {
		prev, ok := previous.Rates[currency]
		if !ok {
			continue
		}
		if prev.IsZero() {
			return nil, ErrZeroPreviousRate.WithDetails(currency)
		}

		diff := value.Sub(prev).Round(DeltaPlaces)
		diffPercent := diff.Div(prev).Mul(hundred).Round(DeltaPlaces)

		rates[currency] = Rate{
			Currency:    currency,
			Value:       value,
			Diff:        diff,
			DiffPercent: diffPercent,
		}
	}

	return &DailyRates{
		Date:  latest.Date,
		Rates: rates,
	}, nil
}
