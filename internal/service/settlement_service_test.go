package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

func TestSettlementService_SettleGroup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	bob := createTestFriend(t, store, user.ID, "Bob")
	group := createTestGroup(t, store, user.ID, bob.ID)
	expenses := NewExpenseService(store)
	settlements := NewSettlementService(store, NewGroupService(store))

	for i := 0; i < 2; i++ {
		_, err := expenses.Create(ctx, user.ID, ExpenseInput{
			Title:     "Dinner",
			Amount:    dec("50.00"),
			PayerID:   user.ID,
			GroupID:   group.ID,
			SplitType: models.SplitEqual,
			Participants: []ParticipantInput{
				{ID: user.ID},
				{ID: bob.ID},
			},
		})
		require.NoError(t, err)
	}

	n, err := settlements.SettleGroup(ctx, user.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Already settled: nothing left to flip.
	n, err = settlements.SettleGroup(ctx, user.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	t.Run("unknown group", func(t *testing.T) {
		_, err := settlements.SettleGroup(ctx, user.ID, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSettlementService_SettleDebt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	bob := createTestFriend(t, store, user.ID, "Bob")
	group := createTestGroup(t, store, user.ID, bob.ID)
	expenses := NewExpenseService(store)
	groups := NewGroupService(store)
	balances := NewBalanceService(store)
	settlements := NewSettlementService(store, groups)

	// Alice fronts 100, so Bob owes 50.
	_, err := expenses.Create(ctx, user.ID, ExpenseInput{
		Title:     "Dinner",
		Amount:    dec("100.00"),
		PayerID:   user.ID,
		GroupID:   group.ID,
		SplitType: models.SplitEqual,
		Participants: []ParticipantInput{
			{ID: user.ID},
			{ID: bob.ID},
		},
	})
	require.NoError(t, err)

	expense, err := settlements.SettleDebt(ctx, user.ID, group.ID, bob.ID, user.ID, dec("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "Settlement", expense.Title)
	assert.Equal(t, bob.ID, expense.PayerID)
	assert.False(t, expense.Settled)
	for _, p := range expense.Participants {
		assert.True(t, p.Settled)
		require.NotNil(t, p.SettledAt)
	}

	// The payment moves Bob by -50 and Alice by +50, closing both out.
	gb, err := balances.Group(ctx, user.ID, group.ID)
	require.NoError(t, err)
	for _, b := range gb.Balances {
		assert.True(t, b.Amount.IsZero(), "%s should be settled up, got %s", b.Name, b.Amount)
	}
	assert.True(t, gb.TotalAmount.IsZero())

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := settlements.SettleDebt(ctx, user.ID, group.ID, bob.ID, user.ID, dec("0"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("self settlement", func(t *testing.T) {
		_, err := settlements.SettleDebt(ctx, user.ID, group.ID, bob.ID, bob.ID, dec("10"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("participant outside the group", func(t *testing.T) {
		_, err := settlements.SettleDebt(ctx, user.ID, group.ID, "stranger", user.ID, dec("10"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSettlementService_SettleDebtShiftsOnlyThePair(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	bob := createTestFriend(t, store, user.ID, "Bob")
	carol := createTestFriend(t, store, user.ID, "Carol")
	group := createTestGroup(t, store, user.ID, bob.ID, carol.ID)
	expenses := NewExpenseService(store)
	groups := NewGroupService(store)
	balances := NewBalanceService(store)
	settlements := NewSettlementService(store, groups)

	_, err := expenses.Create(ctx, user.ID, ExpenseInput{
		Title:     "Cabin",
		Amount:    dec("90.00"),
		PayerID:   user.ID,
		GroupID:   group.ID,
		SplitType: models.SplitEqual,
		Participants: []ParticipantInput{
			{ID: user.ID},
			{ID: bob.ID},
			{ID: carol.ID},
		},
	})
	require.NoError(t, err)

	before, err := balances.Group(ctx, user.ID, group.ID)
	require.NoError(t, err)

	_, err = settlements.SettleDebt(ctx, user.ID, group.ID, bob.ID, user.ID, dec("30.00"))
	require.NoError(t, err)

	after, err := balances.Group(ctx, user.ID, group.ID)
	require.NoError(t, err)

	bobDiff := findBalance(t, after.Balances, bob.ID).Amount.Sub(findBalance(t, before.Balances, bob.ID).Amount)
	aliceDiff := findBalance(t, after.Balances, user.ID).Amount.Sub(findBalance(t, before.Balances, user.ID).Amount)
	carolDiff := findBalance(t, after.Balances, carol.ID).Amount.Sub(findBalance(t, before.Balances, carol.ID).Amount)

	assert.True(t, bobDiff.Equal(dec("-30")), "payer balance should drop, got %s", bobDiff)
	assert.True(t, aliceDiff.Equal(dec("30")), "recipient balance should rise, got %s", aliceDiff)
	assert.True(t, carolDiff.IsZero(), "bystander balance moved by %s", carolDiff)
}
