package models

import "github.com/mmynk/settleup/internal/money"

// Journey is an archived ledger: the expenses that were active when it was
// created, the settlement computed from them and a few frozen totals.
// A Journey is written once and never modified.
type Journey struct {
	// ID is the unique identifier (UUID format), assigned by the store.
	ID string

	// UserID is the ledger owner.
	UserID string

	// Name is the user-provided label (e.g., "Lisbon 2026").
	Name string

	// Date is the human readable archive date.
	Date string

	// Timestamp is the archive time in Unix milliseconds.
	Timestamp int64

	// Expenses are copies of the archived expenses.
	Expenses []Expense

	// Settlements is the settlement plan at archive time.
	Settlements []Transaction

	// TotalAmount is the sum of all archived expense amounts.
	TotalAmount money.Cents

	// ExpenseCount is len(Expenses) at archive time.
	ExpenseCount int

	// PeopleCount is the number of people in the ledger at archive time.
	PeopleCount int
}

// ClearExpenses instructs the store to delete exactly the listed expenses of
// one owner. People and groups are never part of it.
type ClearExpenses struct {
	UserID     string
	ExpenseIDs []string
}

// ArchivePlan pairs a Journey with the ledger mutation that must be applied
// together with it: either both are persisted or neither is.
type ArchivePlan struct {
	Journey Journey
	Clear   ClearExpenses

	// SettlementErr is the consistency check of Journey.Settlements. It is
	// nil for a consistent ledger and is never persisted.
	SettlementErr error
}
