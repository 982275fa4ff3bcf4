package rate

import (
	"math"
	"testing"

	"github.com/infigaming-com/exchange-rates/ecb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(date string, rates map[string]string) ecb.Snapshot {
	s := ecb.Snapshot{Date: date, Rates: make(map[string]decimal.Decimal, len(rates))}
	for currency, r := range rates {
		s.Rates[currency] = decimal.RequireFromString(r)
	}
	return s
}

func TestComputeDeltas(t *testing.T) {
	tcs := []struct {
		name              string
		latest            string
		previous          string
		expectDiff        string
		expectDiffPercent string
	}{
		{
			name:              "fall",
			latest:            "1.0801",
			previous:          "1.0824",
			expectDiff:        "-0.0023",
			expectDiffPercent: "-0.2125",
		},
		{
			name:              "rise",
			latest:            "0.87015",
			previous:          "0.86905",
			expectDiff:        "0.0011",
			expectDiffPercent: "0.1266",
		},
		{
			name:              "diff rounded before percentage",
			latest:            "0.86905",
			previous:          "0.87015",
			expectDiff:        "-0.0011",
			expectDiffPercent: "-0.1264",
		},
		{
			name:              "unchanged",
			latest:            "162.47",
			previous:          "162.47",
			expectDiff:        "0",
			expectDiffPercent: "0",
		},
		{
			name:              "change below rounding precision",
			latest:            "162.47001",
			previous:          "162.47003",
			expectDiff:        "0",
			expectDiffPercent: "0",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			daily, err := ComputeDeltas(
				snapshot("2023-11-24", map[string]string{"XXX": tc.latest}),
				snapshot("2023-11-23", map[string]string{"XXX": tc.previous}),
			)
			require.NoError(t, err)
			require.Contains(t, daily.Rates, "XXX")

			r := daily.Rates["XXX"]
			assert.Equal(t, "XXX", r.Currency)
			assert.True(t, decimal.RequireFromString(tc.latest).Equal(r.Value))
			assert.True(t, decimal.RequireFromString(tc.expectDiff).Equal(r.Diff), "diff %s", r.Diff)
			assert.True(t, decimal.RequireFromString(tc.expectDiffPercent).Equal(r.DiffPercent), "diff_percent %s", r.DiffPercent)
		})
	}
}

func TestComputeDeltasZeroIsPositive(t *testing.T) {
	daily, err := ComputeDeltas(
		snapshot("2023-11-24", map[string]string{"JPY": "162.47"}),
		snapshot("2023-11-23", map[string]string{"JPY": "162.47"}),
	)
	require.NoError(t, err)

	diff := daily.Rates["JPY"].Diff.InexactFloat64()
	diffPercent := daily.Rates["JPY"].DiffPercent.InexactFloat64()
	assert.False(t, math.Signbit(diff))
	assert.False(t, math.Signbit(diffPercent))
}

func TestComputeDeltasKeepsOnlyCurrenciesInBothSnapshots(t *testing.T) {
	daily, err := ComputeDeltas(
		snapshot("2023-11-24", map[string]string{"USD": "1.0801", "CHF": "0.9653"}),
		snapshot("2023-11-23", map[string]string{"USD": "1.0824", "ISK": "151.10"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "2023-11-24", daily.Date)
	assert.Len(t, daily.Rates, 1)
	assert.Contains(t, daily.Rates, "USD")
	assert.NotContains(t, daily.Rates, "CHF")
	assert.NotContains(t, daily.Rates, "ISK")
}

func TestComputeDeltasZeroPreviousRate(t *testing.T) {
	daily, err := ComputeDeltas(
		snapshot("2023-11-24", map[string]string{"USD": "1.0801"}),
		snapshot("2023-11-23", map[string]string{"USD": "0"}),
	)
	assert.ErrorIs(t, err, ErrZeroPreviousRate)
	assert.Nil(t, daily)
}
