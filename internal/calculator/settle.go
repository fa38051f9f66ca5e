package calculator

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// zeroSumTolerance is how far the exact balances may drift from zero before
// the ledger is considered inconsistent.
func zeroSumTolerance() decimal.Decimal {
	return decimal.New(1, -6)
}

// Position is a balance rounded to cents.
type Position struct {
	Person string
	Amount money.Cents
}

// Settlement is the result of netting a set of balances.
type Settlement struct {
	// Transactions settle every creditor and debtor, in emission order.
	Transactions []models.Transaction

	// Positions are the rounded balances the transactions were derived from,
	// in first-seen order.
	Positions []Position

	// Residual is the exact sum of the input balances.
	Residual decimal.Decimal

	// Unmatched holds what was left on one side when the other ran out.
	// Always empty for a consistent ledger.
	Unmatched []Position

	// err is set when the balances could not be rounded to cents.
	err error
}

// Check reports ErrInvariantViolation when the balances did not sum to zero
// or the netting pass could not match every position.
func (s *Settlement) Check() error {
	if s.err != nil {
		return s.err
	}
	var problems []string
	if s.Residual.Abs().GreaterThan(zeroSumTolerance()) {
		problems = append(problems, fmt.Sprintf("balances sum to %s", s.Residual.String()))
	}
	for _, p := range s.Unmatched {
		problems = append(problems, fmt.Sprintf("%s left with %s", p.Person, p.Amount))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvariantViolation, strings.Join(problems, "; "))
}

// ComputeSettlement returns the transactions that settle the given ledger.
func ComputeSettlement(persons []string, expenses []models.Expense) []models.Transaction {
	return Settle(ComputeBalances(persons, expenses)).Transactions
}

// Settle nets balances into transactions.
//
// Balances are rounded to cents, split into creditors and debtors, and both
// sides are sorted by amount descending with ties in first-seen order. The
// largest debtor then pays the largest creditor min(owed, due) until one side
// is exhausted. Every iteration settles at least one party, so there are at
// most creditors+debtors-1 transactions.
func Settle(b *Balances) *Settlement {
	s := &Settlement{Residual: b.Sum()}
	positions, err := Round(b)
	if err != nil {
		s.err = err
		s.Transactions = []models.Transaction{}
		return s
	}
	s.Positions = positions

	var creditors, debtors []Position
	for _, p := range s.Positions {
		switch {
		case p.Amount > 0:
			creditors = append(creditors, p)
		case p.Amount < 0:
			debtors = append(debtors, Position{Person: p.Person, Amount: -p.Amount})
		}
	}
	byAmountDesc := func(a, b Position) int { return cmp.Compare(b.Amount, a.Amount) }
	slices.SortStableFunc(creditors, byAmountDesc)
	slices.SortStableFunc(debtors, byAmountDesc)

	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor, debtor := &creditors[i], &debtors[j]
		amount := min(creditor.Amount, debtor.Amount)

		s.Transactions = append(s.Transactions, models.Transaction{
			From:   debtor.Person,
			To:     creditor.Person,
			Amount: amount,
		})

		creditor.Amount -= amount
		debtor.Amount -= amount
		if creditor.Amount < money.Epsilon {
			i++
		}
		if debtor.Amount < money.Epsilon {
			j++
		}
	}

	s.Unmatched = append(s.Unmatched, creditors[i:]...)
	for _, d := range debtors[j:] {
		s.Unmatched = append(s.Unmatched, Position{Person: d.Person, Amount: -d.Amount})
	}
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	return s
}

// Round converts balances to cents, rounding half away from zero.
//
// Rounding each balance on its own can leave the total a few cents off zero
// (100 split three ways gives 66.67, -33.33 and -33.33). When the exact
// balances do sum to zero, the residual cents are taken back from the
// persons whose rounding moved them furthest in that direction, earliest
// first on ties, so the positions sum to exactly zero and each stays within
// one cent of its exact value.
//
// A balance too large to be held in cents fails with ErrInvariantViolation
// wrapping money.ErrInvalidAmount.
func Round(b *Balances) ([]Position, error) {
	entries := b.Entries()
	positions := make([]Position, len(entries))
	var total money.Cents
	for i, e := range entries {
		amount, err := money.FromDecimal(e.Amount)
		if err == nil {
			total, err = money.Add(total, amount)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: balance of %s: %w", ErrInvariantViolation, e.Person, err)
		}
		positions[i] = Position{Person: e.Person, Amount: amount}
	}

	if total == 0 || b.Sum().Abs().GreaterThan(zeroSumTolerance()) {
		return positions, nil
	}

	step := -money.Cent
	if total < 0 {
		step = money.Cent
	}

	// drift is how far rounding pushed a person in the direction of the residual.
	drift := make([]decimal.Decimal, len(entries))
	candidates := make([]int, len(entries))
	for i, e := range entries {
		d := positions[i].Amount.Decimal().Sub(e.Amount)
		if step > 0 {
			d = d.Neg()
		}
		drift[i] = d
		candidates[i] = i
	}
	slices.SortStableFunc(candidates, func(a, b int) int { return drift[b].Cmp(drift[a]) })

	for _, i := range candidates {
		if total == 0 {
			break
		}
		positions[i].Amount += step
		total += step
	}
	return positions, nil
}
