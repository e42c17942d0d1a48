package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/calculator"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// BalanceService turns the current expense set into balance views. Balances
// are derived state: every call recomputes from storage, nothing is cached.
//
// Settled expenses are excluded: a settled expense has been resolved and no
// longer moves anyone's position.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// Global computes the net balance of every participant across all of the
// user's unsettled expenses, plus the total. A zero total means the ledger
// conserves; a non-zero total indicates expenses whose shares do not sum to
// their amount and is reported as-is.
func (s *BalanceService) Global(ctx context.Context, userID string) ([]models.Balance, decimal.Decimal, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		slog.Error("Global balances failed", "user_id", userID, "error", err)
		return nil, decimal.Zero, err
	}

	memberBalances := calculator.NetBalances(toBalanceInput(expenses))
	total := calculator.TotalBalance(memberBalances)

	slog.Info("Global balances computed",
		"user_id", userID,
		"expenses", len(expenses),
		"participants", len(memberBalances),
	)
	return toModelBalances(memberBalances), total, nil
}

// Group computes the balance view for a single group.
func (s *BalanceService) Group(ctx context.Context, userID, groupID string) (*models.GroupBalance, error) {
	group, err := s.store.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return s.groupBalance(ctx, userID, group)
}

// AllGroups computes one GroupBalance per known group, including groups with
// no qualifying expenses (empty balance list, zero total).
func (s *BalanceService) AllGroups(ctx context.Context, userID string) ([]models.GroupBalance, error) {
	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.GroupBalance, 0, len(groups))
	for _, group := range groups {
		gb, err := s.groupBalance(ctx, userID, group)
		if err != nil {
			return nil, err
		}
		result = append(result, *gb)
	}
	return result, nil
}

func (s *BalanceService) groupBalance(ctx context.Context, userID string, group *models.Group) (*models.GroupBalance, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, userID, group.ID)
	if err != nil {
		slog.Error("Group balances failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	memberBalances := calculator.NetBalances(toBalanceInput(expenses))

	return &models.GroupBalance{
		GroupID:     group.ID,
		GroupName:   group.Name,
		Balances:    toModelBalances(memberBalances),
		TotalAmount: calculator.GroupExposure(memberBalances),
	}, nil
}

// toBalanceInput converts stored expenses to calculator input, dropping
// settled ones.
func toBalanceInput(expenses []*models.Expense) []calculator.ExpenseForBalance {
	input := make([]calculator.ExpenseForBalance, 0, len(expenses))
	for _, exp := range expenses {
		if exp.Settled {
			continue
		}
		shares := make([]calculator.ParticipantShare, len(exp.Participants))
		for i, p := range exp.Participants {
			shares[i] = calculator.ParticipantShare{
				ParticipantID: p.ID,
				Name:          p.Name,
				Share:         p.Share,
			}
		}
		input = append(input, calculator.ExpenseForBalance{
			Amount:  exp.Amount,
			PayerID: exp.PayerID,
			Shares:  shares,
		})
	}
	return input
}

func toModelBalances(memberBalances []calculator.MemberBalance) []models.Balance {
	balances := make([]models.Balance, len(memberBalances))
	for i, mb := range memberBalances {
		balances[i] = models.Balance{
			ParticipantID: mb.ParticipantID,
			Name:          mb.Name,
			Amount:        mb.NetBalance,
		}
	}
	return balances
}
