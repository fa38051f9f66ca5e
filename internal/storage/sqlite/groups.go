package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreateGroup persists a new group with its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM friend_groups WHERE user_id = ? AND name = ? COLLATE NOCASE",
			group.UserID, group.Name,
		).Scan(&one)
		if err == nil {
			return fmt.Errorf("group %q: %w", group.Name, storage.ErrAlreadyExists)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check group: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO friend_groups (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
			group.ID, group.UserID, group.Name, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		for i, name := range group.Members {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO group_members (group_id, position, name) VALUES (?, ?, ?)",
				group.ID, i, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
		return nil
	})
}

// GetGroup retrieves a group and its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM friend_groups WHERE id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&group.ID, &group.UserID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.groupMembers(ctx, "WHERE group_id = ?", groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members[group.ID]
	if group.Members == nil {
		group.Members = []string{}
	}

	return group, nil
}

// ListGroups returns all of the owner's groups, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM friend_groups WHERE user_id = ? ORDER BY created_at DESC, rowid DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	members, err := s.groupMembers(ctx,
		"WHERE group_id IN (SELECT id FROM friend_groups WHERE user_id = ?)", userID)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].Members = members[groups[i].ID]
		if groups[i].Members == nil {
			groups[i].Members = []string{}
		}
	}

	return groups, nil
}

// groupMembers loads members keyed by group ID, in position order.
func (s *SQLiteStore) groupMembers(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, name FROM group_members "+where+" ORDER BY group_id, position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]string)
	for rows.Next() {
		var groupID, name string
		if err := rows.Scan(&groupID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members[groupID] = append(members[groupID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}
	return members, nil
}

// DeleteGroup removes a group; members are removed by cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, userID, groupID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM friend_groups WHERE id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return expectOneRow(res, "group", groupID)
}
