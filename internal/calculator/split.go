package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance for comparing money sums. Shares that differ from
// the declared amount by at most this much are accepted.
var Epsilon = decimal.New(1, -2) // 0.01

var oneHundred = decimal.NewFromInt(100)

// EqualShares splits amount evenly across n participants, rounding each
// share to cents. The last share absorbs the rounding remainder so the
// shares always sum exactly to amount.
func EqualShares(amount decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	per := amount.Div(decimal.NewFromInt(int64(n))).Round(2)
	shares := make([]decimal.Decimal, n)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		shares[i] = per
		running = running.Add(per)
	}
	shares[n-1] = amount.Sub(running)
	return shares, nil
}

// SharesFromPercentages derives shares from per-participant percentages.
// The percentages must sum to 100 within Epsilon. As with EqualShares, the
// last share absorbs the rounding remainder.
func SharesFromPercentages(amount decimal.Decimal, percentages []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(percentages) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	sum := decimal.Zero
	for _, p := range percentages {
		if p.IsNegative() {
			return nil, fmt.Errorf("percentage cannot be negative")
		}
		sum = sum.Add(p)
	}
	if sum.Sub(oneHundred).Abs().GreaterThan(Epsilon) {
		return nil, fmt.Errorf("percentages sum to %s, want 100", sum)
	}

	shares := make([]decimal.Decimal, len(percentages))
	running := decimal.Zero
	for i := 0; i < len(percentages)-1; i++ {
		shares[i] = amount.Mul(percentages[i]).Div(oneHundred).Round(2)
		running = running.Add(shares[i])
	}
	shares[len(shares)-1] = amount.Sub(running)
	return shares, nil
}

// ValidateShares checks that the given shares sum to the declared amount
// within Epsilon. Used for custom splits, where the caller provides the
// shares directly.
func ValidateShares(amount decimal.Decimal, shares []decimal.Decimal) error {
	if len(shares) == 0 {
		return fmt.Errorf("must have at least one participant")
	}
	sum := decimal.Zero
	for _, s := range shares {
		if s.IsNegative() {
			return fmt.Errorf("share cannot be negative")
		}
		sum = sum.Add(s)
	}
	if sum.Sub(amount).Abs().GreaterThan(Epsilon) {
		return fmt.Errorf("shares sum to %s, want %s", sum, amount)
	}
	return nil
}
