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

// CreateGroup persists a new group and its member list.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	if group.Currency == "" {
		group.Currency = "USD"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, owner_user_id, name, description, color, currency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		group.ID, group.OwnerUserID, group.Name, group.Description,
		group.Color, group.Currency, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := insertGroupMembers(ctx, tx, group.ID, group.MemberIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including its member list.
func (s *SQLiteStore) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_user_id, name, description, color, currency, created_at
		 FROM groups WHERE id = ? AND owner_user_id = ?`,
		groupID, userID,
	).Scan(&group.ID, &group.OwnerUserID, &group.Name, &group.Description,
		&group.Color, &group.Currency, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if group.MemberIDs, err = s.loadGroupMembers(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves all groups of a user, oldest first.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_user_id, name, description, color, currency, created_at
		 FROM groups WHERE owner_user_id = ? ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.OwnerUserID, &group.Name, &group.Description,
			&group.Color, &group.Currency, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if group.MemberIDs, err = s.loadGroupMembers(ctx, group.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// UpdateGroup applies a shallow merge of the patch over the stored group.
// A non-nil member list replaces the stored one wholesale, which is how
// add/remove member is implemented at the service layer.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, userID, groupID string, patch models.GroupPatch) (*models.Group, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group := &models.Group{}
	err = tx.QueryRowContext(ctx,
		`SELECT id, owner_user_id, name, description, color, currency, created_at
		 FROM groups WHERE id = ? AND owner_user_id = ?`,
		groupID, userID,
	).Scan(&group.ID, &group.OwnerUserID, &group.Name, &group.Description,
		&group.Color, &group.Currency, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if patch.Name != nil {
		group.Name = *patch.Name
	}
	if patch.Description != nil {
		group.Description = *patch.Description
	}
	if patch.Color != nil {
		group.Color = *patch.Color
	}
	if patch.Currency != nil {
		group.Currency = *patch.Currency
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE groups SET name = ?, description = ?, color = ?, currency = ? WHERE id = ?`,
		group.Name, group.Description, group.Color, group.Currency, group.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	if patch.MemberIDs != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM group_members WHERE group_id = ?", group.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to clear group members: %w", err)
		}
		group.MemberIDs = *patch.MemberIDs
		if err := insertGroupMembers(ctx, tx, group.ID, group.MemberIDs); err != nil {
			return nil, err
		}
	} else {
		if group.MemberIDs, err = loadGroupMembersTx(ctx, tx, group.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return group, nil
}

// DeleteGroup removes a group. Its expenses and member rows cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, userID, groupID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM groups WHERE id = ? AND owner_user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) loadGroupMembers(ctx context.Context, groupID string) ([]string, error) {
	return scanGroupMembers(ctx, s.db, groupID)
}

func loadGroupMembersTx(ctx context.Context, tx *sql.Tx, groupID string) ([]string, error) {
	return scanGroupMembers(ctx, tx, groupID)
}

func scanGroupMembers(ctx context.Context, q querier, groupID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT friend_id FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		memberIDs = append(memberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return memberIDs, nil
}

func insertGroupMembers(ctx context.Context, tx *sql.Tx, groupID string, memberIDs []string) error {
	for i, friendID := range memberIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, friend_id, position) VALUES (?, ?, ?)",
			groupID, friendID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	return nil
}
