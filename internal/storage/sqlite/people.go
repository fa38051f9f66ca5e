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

// CreatePerson inserts a person after checking for duplicates in the same transaction.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person, foldCase bool) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	query := "SELECT 1 FROM people WHERE user_id = ? AND name = ?"
	if foldCase {
		query += " COLLATE NOCASE"
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, query, person.UserID, person.Name).Scan(&one)
		if err == nil {
			return fmt.Errorf("person %q: %w", person.Name, storage.ErrAlreadyExists)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check person: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO people (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
			person.ID, person.UserID, person.Name, person.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
		return nil
	})
}

// ListPeople returns people in insertion order.
func (s *SQLiteStore) ListPeople(ctx context.Context, userID string) ([]models.Person, error) {
	return listPeople(ctx, s.db, userID)
}

func listPeople(ctx context.Context, q querier, userID string) ([]models.Person, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM people WHERE user_id = ? ORDER BY rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// DeletePerson removes a person by ID.
func (s *SQLiteStore) DeletePerson(ctx context.Context, userID, personID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM people WHERE id = ? AND user_id = ?",
		personID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return expectOneRow(res, "person", personID)
}
