package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal parses a decimal attribute value, ignoring surrounding whitespace.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, NewUtilError(ErrCodeInvalidDecimal, "empty decimal value", nil, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewUtilError(ErrCodeInvalidDecimal, "invalid decimal value", err, s)
	}
	return d, nil
}

// DecimalToFloat converts d for JSON output. Zero always comes back as +0.
func DecimalToFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if f == 0 {
		return 0
	}
	return f
}
