package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
)

// snapshotExpense is the JSON form of an archived expense.
// Amounts are stored in cents.
type snapshotExpense struct {
	ID            string           `json:"id"`
	Payer         string           `json:"payer"`
	Amount        int64            `json:"amountCents"`
	Description   string           `json:"description"`
	Beneficiaries []string         `json:"beneficiaries"`
	SplitType     string           `json:"splitType"`
	Splits        map[string]int64 `json:"splitsCents,omitempty"`
	Date          string           `json:"date"`
	Timestamp     int64            `json:"timestamp"`
}

type snapshotTransaction struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amountCents"`
}

// ArchiveLedger snapshots and clears the owner's ledger in one transaction.
func (s *SQLiteStore) ArchiveLedger(ctx context.Context, userID string, build storage.ArchiveFunc) (*models.Journey, error) {
	var journey *models.Journey

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		people, err := listPeople(ctx, tx, userID)
		if err != nil {
			return err
		}
		expenses, err := listExpenses(ctx, tx, userID)
		if err != nil {
			return err
		}

		plan, err := build(models.Names(people), expenses)
		if err != nil {
			return err
		}
		if plan.Clear.UserID != userID {
			return fmt.Errorf("archive plan clears ledger of %s, not %s", plan.Clear.UserID, userID)
		}

		j := plan.Journey
		if j.ID == "" {
			j.ID = uuid.New().String()
		}
		j.UserID = userID
		if err := insertJourney(ctx, tx, &j); err != nil {
			return err
		}

		if err := deleteExpenses(ctx, tx, userID, plan.Clear.ExpenseIDs); err != nil {
			return err
		}

		journey = &j
		return nil
	})
	if err != nil {
		return nil, err
	}

	return journey, nil
}

func insertJourney(ctx context.Context, tx *sql.Tx, j *models.Journey) error {
	expensesJSON, err := json.Marshal(toSnapshotExpenses(j.Expenses))
	if err != nil {
		return fmt.Errorf("failed to encode journey expenses: %w", err)
	}
	settlementsJSON, err := json.Marshal(toSnapshotTransactions(j.Settlements))
	if err != nil {
		return fmt.Errorf("failed to encode journey settlements: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO journeys (id, user_id, name, date, timestamp, expenses_json, settlements_json,
		                       total_cents, expense_count, people_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.UserID, j.Name, j.Date, j.Timestamp, string(expensesJSON), string(settlementsJSON),
		int64(j.TotalAmount), j.ExpenseCount, j.PeopleCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journey: %w", err)
	}
	return nil
}

// deleteExpenses removes exactly ids. Anything less means the ledger changed
// under the plan and the archive must not commit.
func deleteExpenses(ctx context.Context, tx *sql.Tx, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders, args := inClause([]any{userID}, ids)
	res, err := tx.ExecContext(ctx,
		"DELETE FROM expenses WHERE user_id = ? AND id IN "+placeholders,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("failed to clear expenses: removed %d of %d", n, len(ids))
	}
	return nil
}

const journeyColumns = `id, user_id, name, date, timestamp, expenses_json, settlements_json,
	total_cents, expense_count, people_count`

// ListJourneys returns the owner's journeys, newest first.
func (s *SQLiteStore) ListJourneys(ctx context.Context, userID string) ([]models.Journey, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+journeyColumns+" FROM journeys WHERE user_id = ? ORDER BY timestamp DESC, rowid DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	defer rows.Close()

	journeys := []models.Journey{}
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journeys: %w", err)
	}

	return journeys, nil
}

// GetJourney retrieves a journey by ID.
func (s *SQLiteStore) GetJourney(ctx context.Context, userID, journeyID string) (*models.Journey, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+journeyColumns+" FROM journeys WHERE id = ? AND user_id = ?",
		journeyID, userID,
	)
	j, err := scanJourney(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journey %s: %w", journeyID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJourney(row scanner) (*models.Journey, error) {
	j := &models.Journey{}
	var expensesJSON, settlementsJSON string
	var total int64
	err := row.Scan(&j.ID, &j.UserID, &j.Name, &j.Date, &j.Timestamp, &expensesJSON, &settlementsJSON,
		&total, &j.ExpenseCount, &j.PeopleCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan journey: %w", err)
	}
	j.TotalAmount = money.Cents(total)

	var expenses []snapshotExpense
	if err := json.Unmarshal([]byte(expensesJSON), &expenses); err != nil {
		return nil, fmt.Errorf("failed to decode journey expenses: %w", err)
	}
	var settlements []snapshotTransaction
	if err := json.Unmarshal([]byte(settlementsJSON), &settlements); err != nil {
		return nil, fmt.Errorf("failed to decode journey settlements: %w", err)
	}
	j.Expenses = fromSnapshotExpenses(j.UserID, expenses)
	j.Settlements = fromSnapshotTransactions(settlements)

	return j, nil
}

func toSnapshotExpenses(expenses []models.Expense) []snapshotExpense {
	out := make([]snapshotExpense, len(expenses))
	for i, e := range expenses {
		out[i] = snapshotExpense{
			ID:            e.ID,
			Payer:         e.Payer,
			Amount:        int64(e.Amount),
			Description:   e.Description,
			Beneficiaries: e.Beneficiaries,
			SplitType:     string(e.SplitType),
			Date:          e.Date,
			Timestamp:     e.Timestamp,
		}
		if e.Splits != nil {
			out[i].Splits = make(map[string]int64, len(e.Splits))
			for name, share := range e.Splits {
				out[i].Splits[name] = int64(share)
			}
		}
	}
	return out
}

func fromSnapshotExpenses(userID string, expenses []snapshotExpense) []models.Expense {
	out := make([]models.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = models.Expense{
			ID:            e.ID,
			UserID:        userID,
			Payer:         e.Payer,
			Amount:        money.Cents(e.Amount),
			Description:   e.Description,
			Beneficiaries: e.Beneficiaries,
			SplitType:     models.SplitType(e.SplitType),
			Date:          e.Date,
			Timestamp:     e.Timestamp,
		}
		if e.Splits != nil {
			out[i].Splits = make(map[string]money.Cents, len(e.Splits))
			for name, share := range e.Splits {
				out[i].Splits[name] = money.Cents(share)
			}
		}
	}
	return out
}

func toSnapshotTransactions(txs []models.Transaction) []snapshotTransaction {
	out := make([]snapshotTransaction, len(txs))
	for i, t := range txs {
		out[i] = snapshotTransaction{From: t.From, To: t.To, Amount: int64(t.Amount)}
	}
	return out
}

func fromSnapshotTransactions(txs []snapshotTransaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, t := range txs {
		out[i] = models.Transaction{From: t.From, To: t.To, Amount: money.Cents(t.Amount)}
	}
	return out
}
