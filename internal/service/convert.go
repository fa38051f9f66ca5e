package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/pkg/api"
)

// toExpenseModel converts a wire expense. A missing split type means equal;
// splits are only kept for unequal expenses. Date and Timestamp are left for
// the store to stamp.
func toExpenseModel(userID string, e *api.Expense) (models.Expense, error) {
	splitType := models.SplitType(e.SplitType)
	if splitType == "" {
		splitType = models.SplitEqual
	}

	beneficiaries := make([]string, len(e.Beneficiaries))
	for i, b := range e.Beneficiaries {
		beneficiaries[i] = strings.TrimSpace(b)
	}

	var splits map[string]money.Cents
	if splitType == models.SplitUnequal && len(e.Splits) > 0 {
		splits = make(map[string]money.Cents, len(e.Splits))
		for person, amount := range e.Splits {
			share, err := money.FromFloat(amount)
			if err != nil {
				return models.Expense{}, fmt.Errorf("%w: split for %q: %w", models.ErrInvalidExpense, person, err)
			}
			splits[strings.TrimSpace(person)] = share
		}
	}

	amount, err := money.FromFloat(e.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: amount: %w", models.ErrInvalidExpense, err)
	}

	return models.Expense{
		UserID:        userID,
		Payer:         strings.TrimSpace(e.Payer),
		Amount:        amount,
		Description:   strings.TrimSpace(e.Description),
		Beneficiaries: beneficiaries,
		SplitType:     splitType,
		Splits:        splits,
	}, nil
}

func toAPIExpense(e models.Expense) api.Expense {
	var splits map[string]float64
	if e.Splits != nil {
		splits = make(map[string]float64, len(e.Splits))
		for person, amount := range e.Splits {
			splits[person] = amount.Float64()
		}
	}
	return api.Expense{
		ID:            e.ID,
		Payer:         e.Payer,
		Amount:        e.Amount.Float64(),
		Description:   e.Description,
		Beneficiaries: slices.Clone(e.Beneficiaries),
		SplitType:     string(e.SplitType),
		Splits:        splits,
		Date:          e.Date,
		Timestamp:     e.Timestamp,
	}
}

// toAPIExpensesNewestFirst converts expenses stored oldest first.
func toAPIExpensesNewestFirst(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i, e := range expenses {
		out[len(expenses)-1-i] = toAPIExpense(e)
	}
	return out
}

func toAPITransactions(txs []models.Transaction) []api.SettlementTransaction {
	out := make([]api.SettlementTransaction, len(txs))
	for i, t := range txs {
		out[i] = api.SettlementTransaction{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount.Float64(),
		}
	}
	return out
}

func toAPIGroup(g models.Group) api.Group {
	return api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   slices.Clone(g.Members),
		CreatedAt: g.CreatedAt,
	}
}

func toAPIJourney(j models.Journey) api.Journey {
	expenses := make([]api.Expense, len(j.Expenses))
	for i, e := range j.Expenses {
		expenses[i] = toAPIExpense(e)
	}
	return api.Journey{
		ID:           j.ID,
		Name:         j.Name,
		Date:         j.Date,
		Timestamp:    j.Timestamp,
		Expenses:     expenses,
		Settlements:  toAPITransactions(j.Settlements),
		TotalAmount:  j.TotalAmount.Float64(),
		ExpenseCount: j.ExpenseCount,
		PeopleCount:  j.PeopleCount,
	}
}
