package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/calculator"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// Scope selects which expenses a category summary covers.
type Scope string

const (
	// ScopeAll covers every expense.
	ScopeAll Scope = "all"
	// ScopeGroup covers expenses attached to any group.
	ScopeGroup Scope = "group"
	// ScopePersonal covers expenses without a group.
	ScopePersonal Scope = "personal"
)

// ParseScope validates and returns the scope for the given string.
// Empty input defaults to ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeAll, ScopeGroup, ScopePersonal:
		return Scope(s), nil
	case "":
		return ScopeAll, nil
	}
	return "", validationf("unknown scope: %q", s)
}

// CategoryService aggregates spending by category.
type CategoryService struct {
	store storage.Store
}

// NewCategoryService creates a new CategoryService with the given storage backend.
func NewCategoryService(store storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// Totals sums expense amounts by category for the given scope. The result is
// sparse: categories without any expense in scope are absent.
func (s *CategoryService) Totals(ctx context.Context, userID string, scope Scope) (map[models.Category]decimal.Decimal, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		slog.Error("Category totals failed", "user_id", userID, "error", err)
		return nil, err
	}

	input := make([]calculator.ExpenseForSummary, 0, len(expenses))
	for _, exp := range expenses {
		switch scope {
		case ScopeGroup:
			if exp.GroupID == "" {
				continue
			}
		case ScopePersonal:
			if exp.GroupID != "" {
				continue
			}
		}
		input = append(input, calculator.ExpenseForSummary{
			Category: string(exp.Category),
			Amount:   exp.Amount,
		})
	}

	totals := calculator.CategoryTotals(input)
	result := make(map[models.Category]decimal.Decimal, len(totals))
	for category, amount := range totals {
		result[models.Category(category)] = amount
	}

	slog.Info("Category totals computed", "user_id", userID, "scope", scope, "categories", len(result))
	return result, nil
}
