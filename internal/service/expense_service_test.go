package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

func TestExpenseService_Create(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	bob := createTestFriend(t, store, user.ID, "Bob")
	svc := NewExpenseService(store)

	t.Run("equal split derives shares and snapshots names", func(t *testing.T) {
		expense, err := svc.Create(ctx, user.ID, ExpenseInput{
			Title:     "Dinner",
			Amount:    dec("100.00"),
			Category:  models.CategoryFood,
			PayerID:   user.ID,
			SplitType: models.SplitEqual,
			Participants: []ParticipantInput{
				{ID: user.ID},
				{ID: bob.ID},
			},
		})
		require.NoError(t, err)
		require.Len(t, expense.Participants, 2)
		assert.Equal(t, "Alice", expense.Participants[0].Name)
		assert.Equal(t, "Bob", expense.Participants[1].Name)
		assert.True(t, expense.Participants[0].Share.Equal(dec("50")))
		assert.True(t, expense.Participants[1].Share.Equal(dec("50")))
		assert.Equal(t, "USD", expense.Currency)
	})

	t.Run("custom split must cover the amount", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, ExpenseInput{
			Title:     "Taxi",
			Amount:    dec("100.00"),
			PayerID:   user.ID,
			SplitType: models.SplitCustom,
			Participants: []ParticipantInput{
				{ID: user.ID, Share: dec("40.00")},
				{ID: bob.ID, Share: dec("55.00")},
			},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("percentage split within tolerance", func(t *testing.T) {
		expense, err := svc.Create(ctx, user.ID, ExpenseInput{
			Title:     "Hotel",
			Amount:    dec("200.00"),
			PayerID:   bob.ID,
			SplitType: models.SplitPercentage,
			Participants: []ParticipantInput{
				{ID: user.ID, Percentage: dec("30")},
				{ID: bob.ID, Percentage: dec("70")},
			},
		})
		require.NoError(t, err)
		assert.True(t, expense.Participants[0].Share.Equal(dec("60")))
		assert.True(t, expense.Participants[1].Share.Equal(dec("140")))
	})

	t.Run("missing title rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, ExpenseInput{
			Amount:       dec("10"),
			PayerID:      user.ID,
			SplitType:    models.SplitEqual,
			Participants: []ParticipantInput{{ID: user.ID}},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown group rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, ExpenseInput{
			Title:        "Ghost",
			Amount:       dec("10"),
			PayerID:      user.ID,
			GroupID:      "no-such-group",
			SplitType:    models.SplitEqual,
			Participants: []ParticipantInput{{ID: user.ID}},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unresolvable participant keeps its ID as name", func(t *testing.T) {
		expense, err := svc.Create(ctx, user.ID, ExpenseInput{
			Title:        "Solo",
			Amount:       dec("10.00"),
			PayerID:      "stranger",
			SplitType:    models.SplitEqual,
			Participants: []ParticipantInput{{ID: "stranger"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "stranger", expense.Participants[0].Name)
	})
}

func TestExpenseService_Update(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	svc := NewExpenseService(store)

	expense, err := svc.Create(ctx, user.ID, ExpenseInput{
		Title:     "Lunch",
		Amount:    dec("30.00"),
		PayerID:   user.ID,
		SplitType: models.SplitCustom,
		Participants: []ParticipantInput{
			{ID: user.ID, Name: "Alice", Share: dec("30.00")},
		},
	})
	require.NoError(t, err)

	t.Run("amount change re-validates against stored shares", func(t *testing.T) {
		newAmount := dec("50.00")
		_, err := svc.Update(ctx, user.ID, expense.ID, models.ExpensePatch{Amount: &newAmount})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("amount and participants change together", func(t *testing.T) {
		newAmount := dec("50.00")
		participants := []models.Participant{
			{ID: user.ID, Name: "Alice", Share: dec("50.00")},
		}
		updated, err := svc.Update(ctx, user.ID, expense.ID, models.ExpensePatch{
			Amount:       &newAmount,
			Participants: &participants,
		})
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(dec("50.00")))
	})

	t.Run("title-only patch leaves shares alone", func(t *testing.T) {
		title := "Brunch"
		updated, err := svc.Update(ctx, user.ID, expense.ID, models.ExpensePatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Brunch", updated.Title)
		assert.True(t, updated.Amount.Equal(dec("50.00")))
	})

	t.Run("unknown expense", func(t *testing.T) {
		title := "x"
		_, err := svc.Update(ctx, user.ID, "missing", models.ExpensePatch{Title: &title})
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestExpenseService_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	group := createTestGroup(t, store, user.ID)
	svc := NewExpenseService(store)

	for _, groupID := range []string{"", group.ID, ""} {
		_, err := svc.Create(ctx, user.ID, ExpenseInput{
			Title:        "Item",
			Amount:       dec("10.00"),
			PayerID:      user.ID,
			GroupID:      groupID,
			SplitType:    models.SplitEqual,
			Participants: []ParticipantInput{{ID: user.ID, Name: "Alice"}},
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, user.ID, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	grouped, err := svc.List(ctx, user.ID, group.ID, false)
	require.NoError(t, err)
	assert.Len(t, grouped, 1)

	personal, err := svc.List(ctx, user.ID, "", true)
	require.NoError(t, err)
	assert.Len(t, personal, 2)
}
