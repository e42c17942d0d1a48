package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// CreateExpense persists a new expense and its participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, owner_user_id, title, description, amount, currency, category, payer_id, group_id, split_type, settled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.OwnerUserID, expense.Title, expense.Description,
		expense.Amount.String(), expense.Currency, string(expense.Category),
		expense.PayerID, groupID, string(expense.SplitType),
		boolToInt(expense.Settled), expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertParticipants(ctx, tx, expense.ID, expense.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		expenseColumns+" FROM expenses WHERE id = ? AND owner_user_id = ?",
		expenseID, userID,
	)

	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadParticipants(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses retrieves all expenses for a user, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		expenseColumns+" FROM expenses WHERE owner_user_id = ? ORDER BY created_at, id",
		userID,
	)
}

// ListExpensesByGroup retrieves all expenses of one group, oldest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, userID, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		expenseColumns+" FROM expenses WHERE owner_user_id = ? AND group_id = ? ORDER BY created_at, id",
		userID, groupID,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadParticipants(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// UpdateExpense applies a shallow merge of the patch over the stored expense.
// Nil patch fields are left unchanged; a non-nil participant list replaces
// the stored one wholesale.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, userID, expenseID string, patch models.ExpensePatch) (*models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		expenseColumns+" FROM expenses WHERE id = ? AND owner_user_id = ?",
		expenseID, userID,
	)
	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	applyExpensePatch(expense, patch)
	expense.UpdatedAt = time.Now().Unix()

	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET title = ?, description = ?, amount = ?, currency = ?, category = ?,
		        payer_id = ?, group_id = ?, split_type = ?, settled = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Title, expense.Description, expense.Amount.String(), expense.Currency,
		string(expense.Category), expense.PayerID, groupID, string(expense.SplitType),
		boolToInt(expense.Settled), expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if patch.Participants != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM expense_participants WHERE expense_id = ?", expense.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to clear participants: %w", err)
		}
		expense.Participants = *patch.Participants
		if err := insertParticipants(ctx, tx, expense.ID, expense.Participants); err != nil {
			return nil, err
		}
	} else {
		if err := loadParticipantsTx(ctx, tx, expense); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense; participants cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND owner_user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// SettleGroupExpenses flips every unsettled expense of the group (and its
// participant shares) to settled, in one transaction. Amounts are untouched.
func (s *SQLiteStore) SettleGroupExpenses(ctx context.Context, userID, groupID string, settledAt int64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Participant rows first: the subquery still sees settled = 0.
	_, err = tx.ExecContext(ctx,
		`UPDATE expense_participants SET settled = 1, settled_at = ?
		 WHERE settled = 0 AND expense_id IN (
		     SELECT id FROM expenses WHERE owner_user_id = ? AND group_id = ? AND settled = 0
		 )`,
		settledAt, userID, groupID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to settle participants: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET settled = 1, updated_at = ?
		 WHERE owner_user_id = ? AND group_id = ? AND settled = 0`,
		settledAt, userID, groupID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to settle expenses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check settled rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(n), nil
}

const expenseColumns = `SELECT id, owner_user_id, title, description, amount, currency, category, payer_id, group_id, split_type, settled, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var (
		amount    string
		category  string
		groupID   sql.NullString
		splitType string
		settled   int
	)
	err := row.Scan(
		&expense.ID, &expense.OwnerUserID, &expense.Title, &expense.Description,
		&amount, &expense.Currency, &category, &expense.PayerID, &groupID,
		&splitType, &settled, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount, err = parseStoredDecimal(amount)
	if err != nil {
		return nil, fmt.Errorf("bad amount on expense %s: %w", expense.ID, err)
	}
	expense.Category = models.Category(category)
	expense.SplitType = models.SplitType(splitType)
	expense.Settled = settled != 0
	if groupID.Valid {
		expense.GroupID = groupID.String
	}
	return expense, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, expense *models.Expense) error {
	return queryParticipants(ctx, s.db, expense)
}

func loadParticipantsTx(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	return queryParticipants(ctx, tx, expense)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func queryParticipants(ctx context.Context, q querier, expense *models.Expense) error {
	rows, err := q.QueryContext(ctx,
		`SELECT participant_id, name, share, settled, settled_at
		 FROM expense_participants WHERE expense_id = ? ORDER BY position`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	expense.Participants = nil
	for rows.Next() {
		var (
			p         models.Participant
			share     string
			settled   int
			settledAt sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &share, &settled, &settledAt); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Share, err = parseStoredDecimal(share)
		if err != nil {
			return fmt.Errorf("bad share on expense %s: %w", expense.ID, err)
		}
		p.Settled = settled != 0
		if settledAt.Valid {
			ts := settledAt.Int64
			p.SettledAt = &ts
		}
		expense.Participants = append(expense.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, expenseID string, participants []models.Participant) error {
	for i, p := range participants {
		var settledAt interface{}
		if p.SettledAt != nil {
			settledAt = *p.SettledAt
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_participants (expense_id, participant_id, name, share, settled, settled_at, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			expenseID, p.ID, p.Name, p.Share.String(), boolToInt(p.Settled), settledAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

func applyExpensePatch(expense *models.Expense, patch models.ExpensePatch) {
	if patch.Title != nil {
		expense.Title = *patch.Title
	}
	if patch.Description != nil {
		expense.Description = *patch.Description
	}
	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		expense.Currency = *patch.Currency
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.PayerID != nil {
		expense.PayerID = *patch.PayerID
	}
	if patch.GroupID != nil {
		expense.GroupID = *patch.GroupID
	}
	if patch.SplitType != nil {
		expense.SplitType = *patch.SplitType
	}
	if patch.Settled != nil {
		expense.Settled = *patch.Settled
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
