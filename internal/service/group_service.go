package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// GroupService manages groups and resolves their membership. A group's
// membership is the owner plus the stored friend IDs; the owner is never
// part of the stored list.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// GroupInput carries everything needed to create a group.
type GroupInput struct {
	Name        string
	Description string
	Color       string
	Currency    string
	MemberIDs   []string
}

// Create validates and persists a new group.
func (s *GroupService) Create(ctx context.Context, userID string, input GroupInput) (*models.Group, error) {
	slog.Info("CreateGroup request", "user_id", userID, "name", input.Name, "members", len(input.MemberIDs))

	if input.Name == "" {
		return nil, validationf("group name is required")
	}

	group := &models.Group{
		OwnerUserID: userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Currency:    input.Currency,
		MemberIDs:   input.MemberIDs,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "user_id", userID)
	return group, nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, userID, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, userID, groupID)
}

// List retrieves all groups of the user.
func (s *GroupService) List(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroups(ctx, userID)
}

// Update applies a partial update to a group.
func (s *GroupService) Update(ctx context.Context, userID, groupID string, patch models.GroupPatch) (*models.Group, error) {
	slog.Info("UpdateGroup request", "user_id", userID, "group_id", groupID)

	group, err := s.store.UpdateGroup(ctx, userID, groupID, patch)
	if err != nil {
		slog.Error("UpdateGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Group updated", "group_id", groupID)
	return group, nil
}

// Delete removes a group and, by cascade, all of its expenses.
func (s *GroupService) Delete(ctx context.Context, userID, groupID string) error {
	slog.Info("DeleteGroup request", "user_id", userID, "group_id", groupID)

	if err := s.store.DeleteGroup(ctx, userID, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// Members resolves the group's participant candidates: the owner first, then
// each member ID resolved to a current display name through the friend
// directory. IDs that no longer resolve are skipped silently; the balance
// engine never depends on this list, since expenses carry their own name
// snapshots.
func (s *GroupService) Members(ctx context.Context, userID, groupID string) ([]models.Member, error) {
	group, err := s.store.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	members := make([]models.Member, 0, len(group.MemberIDs)+1)

	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		members = append(members, models.Member{ID: owner.ID, Name: owner.DisplayName, IsOwner: true})
	}

	for _, friendID := range group.MemberIDs {
		friend, err := s.store.GetFriend(ctx, userID, friendID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				slog.Debug("Skipping dangling group member", "group_id", groupID, "friend_id", friendID)
				continue
			}
			return nil, err
		}
		members = append(members, models.Member{ID: friend.ID, Name: friend.Name})
	}
	return members, nil
}

// AddMember adds a friend to the group's member list. Adding a member twice
// is a no-op. The friend must exist at call time.
func (s *GroupService) AddMember(ctx context.Context, userID, groupID, friendID string) (*models.Group, error) {
	slog.Info("AddMember request", "user_id", userID, "group_id", groupID, "friend_id", friendID)

	if _, err := s.store.GetFriend(ctx, userID, friendID); err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	for _, id := range group.MemberIDs {
		if id == friendID {
			return group, nil
		}
	}

	memberIDs := append(append([]string{}, group.MemberIDs...), friendID)
	return s.store.UpdateGroup(ctx, userID, groupID, models.GroupPatch{MemberIDs: &memberIDs})
}

// RemoveMember drops a friend from the group's member list. Removing an
// absent member is a no-op. Historical expenses naming the friend keep
// their snapshots.
func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, friendID string) (*models.Group, error) {
	slog.Info("RemoveMember request", "user_id", userID, "group_id", groupID, "friend_id", friendID)

	group, err := s.store.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(group.MemberIDs))
	for _, id := range group.MemberIDs {
		if id != friendID {
			memberIDs = append(memberIDs, id)
		}
	}
	if len(memberIDs) == len(group.MemberIDs) {
		return group, nil
	}
	return s.store.UpdateGroup(ctx, userID, groupID, models.GroupPatch{MemberIDs: &memberIDs})
}
