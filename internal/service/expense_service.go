package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/calculator"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// ExpenseService handles expense creation, updates, and deletion. Shares are
// derived from the declared split type at creation time and validated against
// the expense amount; once stored they are authoritative.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ParticipantInput is one participant of a new or updated expense.
// Share is used for custom splits, Percentage for percentage splits; both
// are ignored for equal splits. Name may be empty, in which case it is
// resolved from the friend directory (or the user account) and snapshotted.
type ParticipantInput struct {
	ID         string
	Name       string
	Share      decimal.Decimal
	Percentage decimal.Decimal
}

// ExpenseInput carries everything needed to record an expense.
type ExpenseInput struct {
	Title        string
	Description  string
	Amount       decimal.Decimal
	Currency     string
	Category     models.Category
	PayerID      string
	GroupID      string
	SplitType    models.SplitType
	Participants []ParticipantInput
}

// Create validates the input, derives participant shares per the split type,
// snapshots display names, and persists the expense. Nothing is written if
// validation fails.
func (s *ExpenseService) Create(ctx context.Context, userID string, input ExpenseInput) (*models.Expense, error) {
	slog.Info("CreateExpense request",
		"user_id", userID,
		"title", input.Title,
		"group_id", input.GroupID,
		"split_type", input.SplitType,
	)

	if input.Title == "" {
		return nil, validationf("title is required")
	}
	if input.Amount.IsNegative() {
		return nil, validationf("amount cannot be negative")
	}
	if input.PayerID == "" {
		return nil, validationf("payer is required")
	}
	if len(input.Participants) == 0 {
		return nil, validationf("must have at least one participant")
	}

	// A referenced group must exist before anything is written.
	if input.GroupID != "" {
		if _, err := s.store.GetGroup(ctx, userID, input.GroupID); err != nil {
			return nil, err
		}
	}

	shares, err := deriveShares(input)
	if err != nil {
		return nil, err
	}

	names, err := s.displayNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	participants := make([]models.Participant, len(input.Participants))
	for i, p := range input.Participants {
		name := p.Name
		if name == "" {
			name = names[p.ID]
		}
		if name == "" {
			name = p.ID
		}
		participants[i] = models.Participant{
			ID:    p.ID,
			Name:  name,
			Share: shares[i],
		}
	}

	expense := &models.Expense{
		OwnerUserID:  userID,
		Title:        input.Title,
		Description:  input.Description,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Category:     input.Category,
		PayerID:      input.PayerID,
		GroupID:      input.GroupID,
		SplitType:    input.SplitType,
		Participants: participants,
	}
	if expense.Currency == "" {
		expense.Currency = "USD"
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Expense created", "expense_id", expense.ID, "user_id", userID)
	return expense, nil
}

// Get retrieves a single expense.
func (s *ExpenseService) Get(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, userID, expenseID)
}

// List retrieves the user's expenses, optionally restricted to one group or
// to personal (group-less) expenses.
func (s *ExpenseService) List(ctx context.Context, userID, groupID string, personalOnly bool) ([]*models.Expense, error) {
	if groupID != "" {
		return s.store.ListExpensesByGroup(ctx, userID, groupID)
	}
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !personalOnly {
		return expenses, nil
	}
	personal := expenses[:0]
	for _, exp := range expenses {
		if exp.GroupID == "" {
			personal = append(personal, exp)
		}
	}
	return personal, nil
}

// Update applies a partial update. When the patch touches the amount or the
// participant list, the resulting shares are re-validated against the
// resulting amount before anything is written.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID string, patch models.ExpensePatch) (*models.Expense, error) {
	slog.Info("UpdateExpense request", "user_id", userID, "expense_id", expenseID)

	if patch.Amount != nil && patch.Amount.IsNegative() {
		return nil, validationf("amount cannot be negative")
	}

	if patch.Amount != nil || patch.Participants != nil {
		existing, err := s.store.GetExpense(ctx, userID, expenseID)
		if err != nil {
			return nil, err
		}
		amount := existing.Amount
		if patch.Amount != nil {
			amount = *patch.Amount
		}
		participants := existing.Participants
		if patch.Participants != nil {
			participants = *patch.Participants
		}
		shares := make([]decimal.Decimal, len(participants))
		for i, p := range participants {
			shares[i] = p.Share
		}
		if err := calculator.ValidateShares(amount, shares); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	if patch.GroupID != nil && *patch.GroupID != "" {
		if _, err := s.store.GetGroup(ctx, userID, *patch.GroupID); err != nil {
			return nil, err
		}
	}

	expense, err := s.store.UpdateExpense(ctx, userID, expenseID, patch)
	if err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expenseID, "user_id", userID)
	return expense, nil
}

// Delete removes an expense. Its contribution disappears from every balance
// computed afterwards.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	slog.Info("DeleteExpense request", "user_id", userID, "expense_id", expenseID)

	if err := s.store.DeleteExpense(ctx, userID, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}

// deriveShares computes per-participant shares according to the split type.
func deriveShares(input ExpenseInput) ([]decimal.Decimal, error) {
	switch input.SplitType {
	case models.SplitEqual:
		shares, err := calculator.EqualShares(input.Amount, len(input.Participants))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return shares, nil

	case models.SplitPercentage:
		percentages := make([]decimal.Decimal, len(input.Participants))
		for i, p := range input.Participants {
			percentages[i] = p.Percentage
		}
		shares, err := calculator.SharesFromPercentages(input.Amount, percentages)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return shares, nil

	case models.SplitCustom:
		shares := make([]decimal.Decimal, len(input.Participants))
		for i, p := range input.Participants {
			shares[i] = p.Share
		}
		if err := calculator.ValidateShares(input.Amount, shares); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return shares, nil
	}
	return nil, validationf("unknown split type: %q", input.SplitType)
}

// displayNames builds the snapshot name lookup: the user's own display name
// plus every friend's current name.
func (s *ExpenseService) displayNames(ctx context.Context, userID string) (map[string]string, error) {
	names := make(map[string]string)

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		names[user.ID] = user.DisplayName
	}

	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, f := range friends {
		names[f.ID] = f.Name
	}
	return names, nil
}
