package sqlite

import "github.com/shopspring/decimal"

// parseStoredDecimal turns a TEXT money column back into a decimal.
// Empty strings read as zero so pre-epsilon rows stay loadable.
func parseStoredDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
