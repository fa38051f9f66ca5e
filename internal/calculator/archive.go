package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// ArchiveJourney builds the snapshot of userID's current ledger and the
// instruction to clear the expenses it contains.
//
// The returned plan is a value only. Callers must persist the Journey and
// apply Clear as one unit: if the Journey cannot be stored, no expense may be
// removed. People and groups are never part of the plan. An inconsistent
// ledger is still archived with its best-effort settlement; the consistency
// check is reported in SettlementErr.
func ArchiveJourney(userID, name string, persons []string, expenses []models.Expense, now time.Time) (*models.ArchivePlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyJourneyName
	}

	snapshot := make([]models.Expense, len(expenses))
	ids := make([]string, len(expenses))
	var total money.Cents
	for i, e := range expenses {
		snapshot[i] = e.Clone()
		ids[i] = e.ID

		var err error
		if total, err = money.Add(total, e.Amount); err != nil {
			return nil, fmt.Errorf("journey total: %w", err)
		}
	}

	settlement := Settle(ComputeBalances(persons, expenses))

	return &models.ArchivePlan{
		Journey: models.Journey{
			UserID:       userID,
			Name:         name,
			Date:         now.Format(models.DateLayout),
			Timestamp:    now.UnixMilli(),
			Expenses:     snapshot,
			Settlements:  settlement.Transactions,
			TotalAmount:  total,
			ExpenseCount: len(expenses),
			PeopleCount:  len(persons),
		},
		Clear:         models.ClearExpenses{UserID: userID, ExpenseIDs: ids},
		SettlementErr: settlement.Check(),
	}, nil
}
