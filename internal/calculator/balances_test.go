package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balancesByID(balances []MemberBalance) map[string]MemberBalance {
	byID := make(map[string]MemberBalance, len(balances))
	for _, b := range balances {
		byID[b.ParticipantID] = b
	}
	return byID
}

func TestNetBalances_TwoWayEqualSplit(t *testing.T) {
	// A pays 100, split 50/50 with B: A is owed 50, B owes 50.
	expenses := []ExpenseForBalance{
		{
			Amount:  dec("100"),
			PayerID: "a",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Name: "Alice", Share: dec("50")},
				{ParticipantID: "b", Name: "Bob", Share: dec("50")},
			},
		},
	}

	balances := NetBalances(expenses)
	require.Len(t, balances, 2)

	byID := balancesByID(balances)
	assert.True(t, byID["a"].NetBalance.Equal(dec("-50")), "got %s", byID["a"].NetBalance)
	assert.True(t, byID["b"].NetBalance.Equal(dec("50")), "got %s", byID["b"].NetBalance)
}

func TestNetBalances_ThreeWaySplit(t *testing.T) {
	// A pays 90 for A, B, C split equally: A=-60, B=+30, C=+30.
	expenses := []ExpenseForBalance{
		{
			Amount:  dec("90"),
			PayerID: "a",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Name: "Alice", Share: dec("30")},
				{ParticipantID: "b", Name: "Bob", Share: dec("30")},
				{ParticipantID: "c", Name: "Carol", Share: dec("30")},
			},
		},
	}

	balances := NetBalances(expenses)
	require.Len(t, balances, 3)

	byID := balancesByID(balances)
	assert.True(t, byID["a"].NetBalance.Equal(dec("-60")))
	assert.True(t, byID["b"].NetBalance.Equal(dec("30")))
	assert.True(t, byID["c"].NetBalance.Equal(dec("30")))

	assert.True(t, GroupExposure(balances).Equal(dec("60")))
}

func TestNetBalances_ConservationPerExpense(t *testing.T) {
	// When shares sum to the amount and the payer participates, every
	// expense's contributions cancel out across participants.
	expenses := []ExpenseForBalance{
		{
			Amount:  dec("73.52"),
			PayerID: "a",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Share: dec("24.51")},
				{ParticipantID: "b", Share: dec("24.51")},
				{ParticipantID: "c", Share: dec("24.50")},
			},
		},
		{
			Amount:  dec("12.00"),
			PayerID: "b",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Share: dec("6.00")},
				{ParticipantID: "b", Share: dec("6.00")},
			},
		},
	}

	total := TotalBalance(NetBalances(expenses))
	assert.True(t, total.IsZero(), "expected zero total, got %s", total)
}

func TestNetBalances_NonParticipantPayerAccruesNothing(t *testing.T) {
	expenses := []ExpenseForBalance{
		{
			Amount:  dec("40"),
			PayerID: "outsider",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Share: dec("20")},
				{ParticipantID: "b", Share: dec("20")},
			},
		},
	}

	balances := NetBalances(expenses)
	byID := balancesByID(balances)

	_, exists := byID["outsider"]
	assert.False(t, exists, "payer without a share should get no balance row")
	assert.True(t, byID["a"].NetBalance.Equal(dec("20")))
	assert.True(t, byID["b"].NetBalance.Equal(dec("20")))
}

func TestNetBalances_NeverPayerAccumulatesOnlyDebt(t *testing.T) {
	expenses := []ExpenseForBalance{
		{
			Amount:  dec("30"),
			PayerID: "a",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Share: dec("15")},
				{ParticipantID: "b", Share: dec("15")},
			},
		},
		{
			Amount:  dec("20"),
			PayerID: "a",
			Shares: []ParticipantShare{
				{ParticipantID: "a", Share: dec("10")},
				{ParticipantID: "b", Share: dec("10")},
			},
		},
	}

	byID := balancesByID(NetBalances(expenses))
	assert.True(t, byID["b"].NetBalance.Equal(dec("25")))
	assert.True(t, byID["b"].TotalPaid.IsZero())
}

func TestNetBalances_SkipsExpenseWithoutPayer(t *testing.T) {
	expenses := []ExpenseForBalance{
		{
			Amount: dec("50"),
			Shares: []ParticipantShare{
				{ParticipantID: "a", Share: dec("50")},
			},
		},
	}

	assert.Empty(t, NetBalances(expenses))
}

func TestGroupExposure_EmptyBalances(t *testing.T) {
	assert.True(t, GroupExposure(nil).IsZero())
}
