// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splittab/splittab/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
// Implementations wrap it with detail; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the persistence contract for the ledger. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
//
// All reads and writes are scoped by owner user ID. Mutations are
// read-modify-write per entity collection; patch updates apply a shallow
// merge over the stored record, never a full overwrite.
type Store interface {
	// Expenses
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, userID, groupID string) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, patch models.ExpensePatch) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error

	// SettleGroupExpenses marks every unsettled expense of the group (and
	// all its participant shares) as settled at the given timestamp, in a
	// single transaction. Returns the number of expenses flipped; zero if
	// the group was already fully settled.
	SettleGroupExpenses(ctx context.Context, userID, groupID string, settledAt int64) (int, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context, userID string) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, userID, groupID string, patch models.GroupPatch) (*models.Group, error)
	// DeleteGroup removes the group and cascade-deletes its expenses.
	DeleteGroup(ctx context.Context, userID, groupID string) error

	// Friends
	CreateFriend(ctx context.Context, friend *models.Friend) error
	GetFriend(ctx context.Context, userID, friendID string) (*models.Friend, error)
	ListFriends(ctx context.Context, userID string) ([]*models.Friend, error)
	// DeleteFriend removes a friend from the directory. Historical
	// expenses keep their snapshotted participant names.
	DeleteFriend(ctx context.Context, userID, friendID string) error

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
