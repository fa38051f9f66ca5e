package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// CreateExpense persists an expense with its beneficiaries and splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Timestamp == 0 {
		now := time.Now()
		expense.Timestamp = now.UnixMilli()
		if expense.Date == "" {
			expense.Date = now.Format(models.DateLayout)
		}
	}
	if expense.Date == "" {
		expense.Date = time.UnixMilli(expense.Timestamp).Format(models.DateLayout)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertExpense(ctx, tx, expense)
	})
}

func insertExpense(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, user_id, payer, amount_cents, description, split_type, date, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Payer, int64(e.Amount), e.Description, string(e.SplitType), e.Date, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, name := range e.Beneficiaries {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_beneficiaries (expense_id, position, name) VALUES (?, ?, ?)",
			e.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert beneficiary: %w", err)
		}
	}

	for name, share := range e.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, name, amount_cents) VALUES (?, ?, ?)",
			e.ID, name, int64(share),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	return nil
}

// ListExpenses returns the owner's active expenses, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	return listExpenses(ctx, s.db, userID)
}

// listExpenses loads expenses in three sequential queries. Each result set is
// closed before the next query starts because the pool has one connection.
func listExpenses(ctx context.Context, q querier, userID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, payer, amount_cents, description, split_type, date, timestamp
		 FROM expenses WHERE user_id = ? ORDER BY timestamp, rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := []models.Expense{}
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		var amount int64
		var splitType string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Payer, &amount, &e.Description, &splitType, &e.Date, &e.Timestamp); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = money.Cents(amount)
		e.SplitType = models.SplitType(splitType)
		e.Beneficiaries = []string{}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	rows, err = q.QueryContext(ctx,
		`SELECT b.expense_id, b.name
		 FROM expense_beneficiaries b JOIN expenses e ON e.id = b.expense_id
		 WHERE e.user_id = ? ORDER BY b.expense_id, b.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiaries: %w", err)
	}
	for rows.Next() {
		var expenseID, name string
		if err := rows.Scan(&expenseID, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Beneficiaries = append(expenses[i].Beneficiaries, name)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beneficiaries: %w", err)
	}

	rows, err = q.QueryContext(ctx,
		`SELECT s.expense_id, s.name, s.amount_cents
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var expenseID, name string
		var amount int64
		if err := rows.Scan(&expenseID, &name, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		i, ok := index[expenseID]
		if !ok {
			continue
		}
		if expenses[i].Splits == nil {
			expenses[i].Splits = make(map[string]money.Cents)
		}
		expenses[i].Splits[name] = money.Cents(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating splits: %w", err)
	}

	return expenses, nil
}

// ResetExpenses deletes every active expense of the owner.
func (s *SQLiteStore) ResetExpenses(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset expenses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
