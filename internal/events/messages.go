package events

import (
	"encoding/json"
	"time"

	"github.com/mmynk/settleup/internal/models"
)

// JourneyArchivedKey is the default routing key of JourneyArchived messages.
const JourneyArchivedKey = "journey.archived"

// JourneyArchived announces that a ledger was archived into a journey.
// It carries the journey's totals only; consumers fetch the journey by ID.
type JourneyArchived struct {
	JourneyID       string    `json:"journeyId"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	TotalAmount     float64   `json:"totalAmount"`
	ExpenseCount    int       `json:"expenseCount"`
	PeopleCount     int       `json:"peopleCount"`
	SettlementCount int       `json:"settlementCount"`
	ArchivedAt      time.Time `json:"archivedAt"`
}

// NewJourneyArchived builds the message for a stored journey.
func NewJourneyArchived(j *models.Journey) *JourneyArchived {
	return &JourneyArchived{
		JourneyID:       j.ID,
		UserID:          j.UserID,
		Name:            j.Name,
		TotalAmount:     j.TotalAmount.Float64(),
		ExpenseCount:    j.ExpenseCount,
		PeopleCount:     j.PeopleCount,
		SettlementCount: len(j.Settlements),
		ArchivedAt:      time.UnixMilli(j.Timestamp).UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *JourneyArchived) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// JourneyArchivedFromJSON decodes a message body.
func JourneyArchivedFromJSON(data []byte) (*JourneyArchived, error) {
	var msg JourneyArchived
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
