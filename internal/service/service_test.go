package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
	"github.com/splittab/splittab/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store storage.Store) *models.User {
	t.Helper()
	user := models.NewUser("alice@example.com", "Alice", "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func createTestFriend(t *testing.T, store storage.Store, userID, name string) *models.Friend {
	t.Helper()
	friend := &models.Friend{Name: name}
	created, err := NewFriendService(store).Create(context.Background(), userID, friend)
	require.NoError(t, err)
	return created
}

func createTestGroup(t *testing.T, store storage.Store, userID string, memberIDs ...string) *models.Group {
	t.Helper()
	group, err := NewGroupService(store).Create(context.Background(), userID, GroupInput{
		Name:      "Trip",
		Currency:  "USD",
		MemberIDs: memberIDs,
	})
	require.NoError(t, err)
	return group
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func findBalance(t *testing.T, balances []models.Balance, participantID string) models.Balance {
	t.Helper()
	for _, b := range balances {
		if b.ParticipantID == participantID {
			return b
		}
	}
	t.Fatalf("no balance for participant %s", participantID)
	return models.Balance{}
}
