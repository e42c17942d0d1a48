package service

import (
	"context"
	"log/slog"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// FriendService manages the friend directory.
type FriendService struct {
	store storage.Store
}

// NewFriendService creates a new FriendService with the given storage backend.
func NewFriendService(store storage.Store) *FriendService {
	return &FriendService{store: store}
}

// Create adds a friend to the directory.
func (s *FriendService) Create(ctx context.Context, userID string, friend *models.Friend) (*models.Friend, error) {
	slog.Info("CreateFriend request", "user_id", userID, "name", friend.Name)

	if friend.Name == "" {
		return nil, validationf("friend name is required")
	}

	friend.OwnerUserID = userID
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		slog.Error("CreateFriend failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Friend created", "friend_id", friend.ID, "user_id", userID)
	return friend, nil
}

// Get retrieves a friend by ID.
func (s *FriendService) Get(ctx context.Context, userID, friendID string) (*models.Friend, error) {
	return s.store.GetFriend(ctx, userID, friendID)
}

// List retrieves all friends of the user.
func (s *FriendService) List(ctx context.Context, userID string) ([]*models.Friend, error) {
	return s.store.ListFriends(ctx, userID)
}

// Delete removes a friend from the directory. Group member lists keep the
// dangling ID (the resolver skips it) and historical expenses keep their
// name snapshots.
func (s *FriendService) Delete(ctx context.Context, userID, friendID string) error {
	slog.Info("DeleteFriend request", "user_id", userID, "friend_id", friendID)

	if err := s.store.DeleteFriend(ctx, userID, friendID); err != nil {
		slog.Error("DeleteFriend failed", "friend_id", friendID, "error", err)
		return err
	}

	slog.Info("Friend deleted", "friend_id", friendID)
	return nil
}
