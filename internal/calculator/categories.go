package calculator

import "github.com/shopspring/decimal"

// ExpenseForSummary carries the minimal expense information needed for
// category aggregation.
type ExpenseForSummary struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryTotals sums expense amounts (not per-participant shares) by
// category. The result is sparse: categories without expenses are absent,
// never present with a zero value.
func CategoryTotals(expenses []ExpenseForSummary) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, exp := range expenses {
		totals[exp.Category] = totals[exp.Category].Add(exp.Amount)
	}
	return totals
}
