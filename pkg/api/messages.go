// Package api defines the request and response messages of the settleup.v1
// services. Messages are plain structs serialized as JSON; money is a JSON
// number in currency units (e.g. 12.5 for 12.50).
package api

// Expense is the wire form of an expense record. Amounts are capped at
// money.MaxAmount. Date and Timestamp are assigned by the server and ignored
// on input.
type Expense struct {
	ID            string             `json:"id,omitempty"`
	Payer         string             `json:"payer" validate:"required"`
	Amount        float64            `json:"amount" validate:"gt=0,lte=1000000000000"`
	Description   string             `json:"description"`
	Beneficiaries []string           `json:"beneficiaries" validate:"required,min=1,dive,required"`
	SplitType     string             `json:"splitType" validate:"omitempty,oneof=equal unequal"`
	Splits        map[string]float64 `json:"splits" validate:"omitempty,dive,gte=0,lte=1000000000000"`
	Date          string             `json:"date,omitempty"`
	Timestamp     int64              `json:"timestamp,omitempty"`
}

// SettlementTransaction is one payment of a settlement plan.
type SettlementTransaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Balance is a person's net position rounded to cents.
// Positive = is owed money, negative = owes money.
type Balance struct {
	Person string  `json:"person"`
	Amount float64 `json:"amount"`
}

// Friend is a person together with the ID used to delete it.
type Friend struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group is a reusable participant list.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// Journey is an archived ledger snapshot.
type Journey struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Date         string                  `json:"date"`
	Timestamp    int64                   `json:"timestamp"`
	Expenses     []Expense               `json:"expenses"`
	Settlements  []SettlementTransaction `json:"settlements"`
	TotalAmount  float64                 `json:"totalAmount"`
	ExpenseCount int                     `json:"expenseCount"`
	PeopleCount  int                     `json:"peopleCount"`
}

// UserService

type InitUserRequest struct {
	UserID string `json:"userId" validate:"required,max=128"`
}

type InitUserResponse struct {
	UserID string `json:"userId"`
	IsNew  bool   `json:"isNew"`
	Token  string `json:"token"`
}

// LedgerService

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []string `json:"people"`
}

type AddPersonRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddPersonResponse struct {
	Person string `json:"person"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

type AddFriendRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddFriendResponse struct {
	Friend Friend `json:"friend"`
}

type DeleteFriendRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteFriendResponse struct{}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type GetSettlementRequest struct{}

type GetSettlementResponse struct {
	Transactions []SettlementTransaction `json:"transactions"`
}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
}

type ResetExpensesRequest struct{}

type ResetExpensesResponse struct {
	Cleared int64 `json:"cleared"`
}

// GroupService

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type DeleteGroupRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteGroupResponse struct{}

// JourneyService

type ListJourneysRequest struct{}

type ListJourneysResponse struct {
	Journeys []Journey `json:"journeys"`
}

type GetJourneyRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetJourneyResponse struct {
	Journey Journey `json:"journey"`
}

type ArchiveJourneyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type ArchiveJourneyResponse struct {
	Journey Journey `json:"journey"`
}
