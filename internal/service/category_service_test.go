package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splittab/splittab/internal/models"
)

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, scope)

	scope, err = ParseScope("personal")
	require.NoError(t, err)
	assert.Equal(t, ScopePersonal, scope)

	_, err = ParseScope("bogus")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategoryService_Totals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	group := createTestGroup(t, store, user.ID)
	expenses := NewExpenseService(store)
	categories := NewCategoryService(store)

	create := func(title, amount string, category models.Category, groupID string) {
		t.Helper()
		_, err := expenses.Create(ctx, user.ID, ExpenseInput{
			Title:        title,
			Amount:       dec(amount),
			Category:     category,
			PayerID:      user.ID,
			GroupID:      groupID,
			SplitType:    models.SplitEqual,
			Participants: []ParticipantInput{{ID: user.ID, Name: "Alice"}},
		})
		require.NoError(t, err)
	}

	create("Groceries", "40.00", models.CategoryFood, "")
	create("Dinner", "60.00", models.CategoryFood, group.ID)
	create("Train", "25.00", models.CategoryTransport, group.ID)

	t.Run("all", func(t *testing.T) {
		totals, err := categories.Totals(ctx, user.ID, ScopeAll)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.True(t, totals[models.CategoryFood].Equal(dec("100.00")))
		assert.True(t, totals[models.CategoryTransport].Equal(dec("25.00")))
	})

	t.Run("group and personal partition the total", func(t *testing.T) {
		grouped, err := categories.Totals(ctx, user.ID, ScopeGroup)
		require.NoError(t, err)
		personal, err := categories.Totals(ctx, user.ID, ScopePersonal)
		require.NoError(t, err)

		assert.True(t, grouped[models.CategoryFood].Equal(dec("60.00")))
		assert.True(t, grouped[models.CategoryTransport].Equal(dec("25.00")))
		assert.True(t, personal[models.CategoryFood].Equal(dec("40.00")))

		// No category appears in personal that is not food.
		assert.Len(t, personal, 1)
	})

	t.Run("absent categories stay absent", func(t *testing.T) {
		totals, err := categories.Totals(ctx, user.ID, ScopeAll)
		require.NoError(t, err)
		_, ok := totals[models.CategoryEntertainment]
		assert.False(t, ok)
	})
}
