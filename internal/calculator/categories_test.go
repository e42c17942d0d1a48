package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTotals(t *testing.T) {
	expenses := []ExpenseForSummary{
		{Category: "food", Amount: dec("12.50")},
		{Category: "food", Amount: dec("7.50")},
		{Category: "travel", Amount: dec("300")},
	}

	totals := CategoryTotals(expenses)
	require.Len(t, totals, 2)
	assert.True(t, totals["food"].Equal(dec("20")))
	assert.True(t, totals["travel"].Equal(dec("300")))

	// Sparse: categories without expenses are absent, not zero.
	_, ok := totals["transport"]
	assert.False(t, ok)
}

func TestCategoryTotals_Empty(t *testing.T) {
	assert.Empty(t, CategoryTotals(nil))
}

func TestCategoryTotals_ScopePartition(t *testing.T) {
	// Splitting the expense set by group presence partitions the totals:
	// global sums equal group-scoped plus personal-scoped sums.
	grouped := []ExpenseForSummary{
		{Category: "food", Amount: dec("30")},
		{Category: "utilities", Amount: dec("45.50")},
	}
	personal := []ExpenseForSummary{
		{Category: "food", Amount: dec("12")},
		{Category: "education", Amount: dec("99.99")},
	}
	all := append(append([]ExpenseForSummary{}, grouped...), personal...)

	globalTotal := dec("0")
	for _, v := range CategoryTotals(all) {
		globalTotal = globalTotal.Add(v)
	}
	scopedTotal := dec("0")
	for _, v := range CategoryTotals(grouped) {
		scopedTotal = scopedTotal.Add(v)
	}
	for _, v := range CategoryTotals(personal) {
		scopedTotal = scopedTotal.Add(v)
	}

	assert.True(t, globalTotal.Equal(scopedTotal))
}
