package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/settleup/internal/models"
)

// EnsureUser inserts the user if it is not known yet.
func (s *SQLiteStore) EnsureUser(ctx context.Context, userID string) (*models.User, bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, created_at) VALUES (?, ?) ON CONFLICT (id) DO NOTHING",
		userID, time.Now().Unix(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{}
	err = s.db.QueryRowContext(ctx,
		"SELECT id, created_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, n == 1, nil
}
