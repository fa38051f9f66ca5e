package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mmynk/settleup/internal/money"
)

// SplitType says how an expense is divided between its beneficiaries.
type SplitType string

const (
	// SplitEqual divides the amount evenly between all beneficiaries.
	SplitEqual SplitType = "equal"

	// SplitUnequal uses the per-person amounts in Expense.Splits.
	SplitUnequal SplitType = "unequal"
)

// DateLayout formats the display Date of expenses and journeys (e.g. "3/14/2026").
const DateLayout = "1/2/2006"

// ErrInvalidExpense is wrapped by every Expense.Validate failure.
var ErrInvalidExpense = errors.New("invalid expense")

// Expense is an immutable record of a payment made on behalf of others.
type Expense struct {
	// ID is the unique identifier (UUID format), assigned by the store.
	ID string

	// UserID is the ledger owner.
	UserID string

	// Payer is the person who paid.
	Payer string

	// Amount is the total paid. Always positive for a valid expense.
	Amount money.Cents

	// Description is optional free text (e.g., "Dinner").
	Description string

	// Beneficiaries are the people the expense was paid for, in entry order.
	// The payer may be one of them.
	Beneficiaries []string

	// SplitType selects equal or custom division.
	SplitType SplitType

	// Splits holds each beneficiary's share when SplitType is SplitUnequal.
	// Nil for equal splits.
	Splits map[string]money.Cents

	// Date is the human readable creation date.
	Date string

	// Timestamp is the creation time in Unix milliseconds.
	Timestamp int64
}

// Clone returns a deep copy so snapshots never share slices or maps with the
// active ledger.
func (e Expense) Clone() Expense {
	c := e
	c.Beneficiaries = slices.Clone(e.Beneficiaries)
	if e.Splits != nil {
		c.Splits = maps.Clone(e.Splits)
	}
	return c
}

// Validate enforces the expense invariants before a record is accepted into
// a ledger. Amounts are integer cents, so "unequal splits sum to the amount
// within 0.01" means the sum must match exactly.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Payer) == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidExpense)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if e.Amount > money.MaxCents {
		return fmt.Errorf("%w: amount exceeds %s", ErrInvalidExpense, money.MaxCents)
	}
	if len(e.Beneficiaries) == 0 {
		return fmt.Errorf("%w: at least one beneficiary is required", ErrInvalidExpense)
	}
	for _, b := range e.Beneficiaries {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("%w: beneficiary names cannot be empty", ErrInvalidExpense)
		}
	}

	switch e.SplitType {
	case SplitEqual:
		return nil
	case SplitUnequal:
	default:
		return fmt.Errorf("%w: unknown split type %q", ErrInvalidExpense, e.SplitType)
	}

	if len(e.Splits) == 0 {
		return fmt.Errorf("%w: unequal split requires split amounts", ErrInvalidExpense)
	}
	var total money.Cents
	for person, share := range e.Splits {
		if !slices.Contains(e.Beneficiaries, person) {
			return fmt.Errorf("%w: split for %q who is not a beneficiary", ErrInvalidExpense, person)
		}
		if share < 0 {
			return fmt.Errorf("%w: split for %q is negative", ErrInvalidExpense, person)
		}
		if share > money.MaxCents {
			return fmt.Errorf("%w: split for %q exceeds %s", ErrInvalidExpense, person, money.MaxCents)
		}
		total += share
	}
	if (total - e.Amount).Abs() >= money.Epsilon {
		return fmt.Errorf("%w: split amounts must equal total expense amount (%s != %s)",
			ErrInvalidExpense, total, e.Amount)
	}
	return nil
}
