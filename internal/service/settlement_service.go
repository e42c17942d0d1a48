package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// SettlementService resolves debts without rewriting history: bulk
// settlement flips settled flags, pairwise settlement appends a new
// zero-sum expense.
type SettlementService struct {
	store  storage.Store
	groups *GroupService
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(store storage.Store, groups *GroupService) *SettlementService {
	return &SettlementService{store: store, groups: groups}
}

// SettleGroup marks every unsettled expense of the group as settled and
// returns how many were flipped. Amounts and shares are never touched.
// Settling an already-settled group is a no-op.
func (s *SettlementService) SettleGroup(ctx context.Context, userID, groupID string) (int, error) {
	slog.Info("SettleGroup request", "user_id", userID, "group_id", groupID)

	// The group must resolve before anything is written.
	if _, err := s.store.GetGroup(ctx, userID, groupID); err != nil {
		return 0, err
	}

	n, err := s.store.SettleGroupExpenses(ctx, userID, groupID, time.Now().Unix())
	if err != nil {
		slog.Error("SettleGroup failed", "group_id", groupID, "error", err)
		return 0, err
	}

	slog.Info("Group settled", "group_id", groupID, "expenses_settled", n)
	return n, nil
}

// SettleDebt records a payment of amount from one participant to another
// within a group. It appends a single settlement expense: "from" is the
// payer with a zero share, "to" carries the full amount as their share, and
// both participant rows are marked settled at creation. Under the balance
// engine this shifts from's balance by -amount and to's by +amount without
// altering any prior expense. The expense itself stays unsettled so the
// settled-exclusive balance view keeps counting it until the group is bulk
// settled.
//
// The amount is not checked against the actual debt: overpaying is allowed
// and flips the sign of the pairwise balance.
func (s *SettlementService) SettleDebt(ctx context.Context, userID, groupID, fromID, toID string, amount decimal.Decimal) (*models.Expense, error) {
	slog.Info("SettleDebt request",
		"user_id", userID,
		"group_id", groupID,
		"from", fromID,
		"to", toID,
	)

	if !amount.IsPositive() {
		return nil, validationf("settlement amount must be positive")
	}
	if fromID == toID {
		return nil, validationf("cannot settle with yourself")
	}

	group, err := s.store.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.groups.Members(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	from, ok := findMember(members, fromID)
	if !ok {
		return nil, fmt.Errorf("participant %s not in group %s: %w", fromID, groupID, storage.ErrNotFound)
	}
	to, ok := findMember(members, toID)
	if !ok {
		return nil, fmt.Errorf("participant %s not in group %s: %w", toID, groupID, storage.ErrNotFound)
	}

	now := time.Now().Unix()
	expense := &models.Expense{
		OwnerUserID: userID,
		Title:       "Settlement",
		Description: fmt.Sprintf("%s paid %s", from.Name, to.Name),
		Amount:      amount,
		Currency:    group.Currency,
		Category:    models.CategoryOther,
		PayerID:     fromID,
		GroupID:     groupID,
		SplitType:   models.SplitCustom,
		Participants: []models.Participant{
			{ID: fromID, Name: from.Name, Share: decimal.Zero, Settled: true, SettledAt: &now},
			{ID: toID, Name: to.Name, Share: amount, Settled: true, SettledAt: &now},
		},
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("SettleDebt failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Debt settled",
		"expense_id", expense.ID,
		"group_id", groupID,
		"from", fromID,
		"to", toID,
	)
	return expense, nil
}

func findMember(members []models.Member, id string) (models.Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}
