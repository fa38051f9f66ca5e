package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// Cached views of a ledger.
const (
	settlementView = "settlement"
	balancesView   = "balances"
)

// LedgerService implements the Connect LedgerService: people, friends,
// active expenses and the live settlement derived from them.
type LedgerService struct {
	store   storage.Store
	cache   *cache.Cache
	metrics *metrics.Metrics
}

// NewLedgerService creates a LedgerService. cache and m may be nil.
func NewLedgerService(store storage.Store, c *cache.Cache, m *metrics.Metrics) *LedgerService {
	return &LedgerService{store: store, cache: c, metrics: m}
}

// ListPeople returns the names of everyone in the ledger, in creation order.
func (s *LedgerService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListPeople request received", "user_id", userID)

	people, err := s.store.ListPeople(ctx, userID)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListPeopleResponse{People: models.Names(people)}), nil
}

// AddPerson adds a name to the ledger. Exact duplicates are rejected.
func (s *LedgerService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	person, err := s.createPerson(ctx, req.Msg.Name, false)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.AddPersonResponse{Person: person.Name}), nil
}

// ListFriends returns the ledger's people with their IDs, newest first.
func (s *LedgerService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListFriends request received", "user_id", userID)

	people, err := s.store.ListPeople(ctx, userID)
	if err != nil {
		slog.Error("ListFriends failed", "error", err)
		return nil, toConnectError(err)
	}

	friends := make([]api.Friend, len(people))
	for i, p := range people {
		friends[len(people)-1-i] = api.Friend{ID: p.ID, Name: p.Name}
	}

	return connect.NewResponse(&api.ListFriendsResponse{Friends: friends}), nil
}

// AddFriend adds a name to the ledger. Names differing only in case are
// duplicates.
func (s *LedgerService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	person, err := s.createPerson(ctx, req.Msg.Name, true)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.AddFriendResponse{
		Friend: api.Friend{ID: person.ID, Name: person.Name},
	}), nil
}

func (s *LedgerService) createPerson(ctx context.Context, name string, foldCase bool) (*models.Person, error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	slog.Info("AddPerson request received", "user_id", userID, "name", name, "fold_case", foldCase)

	if err := validateRequest(&api.AddPersonRequest{Name: name}); err != nil {
		return nil, err
	}

	person := &models.Person{UserID: userID, Name: name}
	if err := s.store.CreatePerson(ctx, person, foldCase); err != nil {
		slog.Warn("AddPerson failed", "name", name, "error", err)
		return nil, toConnectError(err)
	}
	s.invalidate(ctx, userID)

	slog.Info("Person added", "person_id", person.ID, "name", person.Name)
	return person, nil
}

// DeleteFriend removes a person by ID. Expenses naming the person are kept.
func (s *LedgerService) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteFriend request received", "user_id", userID, "person_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeletePerson(ctx, userID, req.Msg.ID); err != nil {
		slog.Error("DeleteFriend failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.invalidate(ctx, userID)

	slog.Info("Friend deleted", "person_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteFriendResponse{}), nil
}

// ListExpenses returns the active expenses, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return s.listExpenses(ctx, "ListExpenses")
}

// ListActivity is the activity feed: the active expenses, newest first.
func (s *LedgerService) ListActivity(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return s.listExpenses(ctx, "ListActivity")
}

func (s *LedgerService) listExpenses(ctx context.Context, op string) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info(op+" request received", "user_id", userID)

	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		slog.Error(op+" failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info(op+" successful", "count", len(expenses))
	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: toAPIExpensesNewestFirst(expenses),
	}), nil
}

// AddExpense validates and records an expense.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.Expense]) (*connect.Response[api.Expense], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddExpense request received",
		"user_id", userID,
		"payer", req.Msg.Payer,
		"amount", req.Msg.Amount,
		"beneficiaries_count", len(req.Msg.Beneficiaries),
		"split_type", req.Msg.SplitType,
	)

	if err := validateRequest(req.Msg); err != nil {
		slog.Warn("AddExpense rejected", "error", err)
		return nil, err
	}

	expense, err := toExpenseModel(userID, req.Msg)
	if err != nil {
		slog.Warn("AddExpense rejected", "error", err)
		return nil, toConnectError(err)
	}
	if err := expense.Validate(); err != nil {
		slog.Warn("AddExpense rejected", "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, &expense); err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, toConnectError(err)
	}
	s.invalidate(ctx, userID)

	slog.Info("Expense added", "expense_id", expense.ID, "amount", expense.Amount.String())

	resp := toAPIExpense(expense)
	return connect.NewResponse(&resp), nil
}

// GetSettlement returns the transactions that settle the active ledger.
func (s *LedgerService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetSettlement request received", "user_id", userID)

	var resp api.GetSettlementResponse
	hit, err := s.cache.FetchJSON(ctx, userID, settlementView, &resp, func(ctx context.Context) (any, error) {
		settlement, err := s.settle(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &api.GetSettlementResponse{Transactions: toAPITransactions(settlement.Transactions)}, nil
	})
	if err != nil {
		slog.Error("GetSettlement failed", "error", err)
		return nil, toConnectError(err)
	}
	s.recordLookup(hit)

	slog.Info("GetSettlement successful", "transactions", len(resp.Transactions), "cached", hit)
	return connect.NewResponse(&resp), nil
}

// GetBalances returns every person's net position rounded to cents.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBalances request received", "user_id", userID)

	var resp api.GetBalancesResponse
	hit, err := s.cache.FetchJSON(ctx, userID, balancesView, &resp, func(ctx context.Context) (any, error) {
		balances, err := s.balances(ctx, userID)
		if err != nil {
			return nil, err
		}
		positions, err := calculator.Round(balances)
		if err != nil {
			s.metrics.InvariantViolation()
			return nil, err
		}
		out := make([]api.Balance, len(positions))
		for i, p := range positions {
			out[i] = api.Balance{Person: p.Person, Amount: p.Amount.Float64()}
		}
		return &api.GetBalancesResponse{Balances: out}, nil
	})
	if err != nil {
		slog.Error("GetBalances failed", "error", err)
		return nil, toConnectError(err)
	}
	s.recordLookup(hit)

	return connect.NewResponse(&resp), nil
}

// ResetExpenses clears the active expenses. People, groups and journeys stay.
func (s *LedgerService) ResetExpenses(ctx context.Context, req *connect.Request[api.ResetExpensesRequest]) (*connect.Response[api.ResetExpensesResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ResetExpenses request received", "user_id", userID)

	cleared, err := s.store.ResetExpenses(ctx, userID)
	if err != nil {
		slog.Error("ResetExpenses failed", "error", err)
		return nil, toConnectError(err)
	}
	s.invalidate(ctx, userID)

	slog.Info("Expenses reset", "user_id", userID, "cleared", cleared)
	return connect.NewResponse(&api.ResetExpensesResponse{Cleared: cleared}), nil
}

func (s *LedgerService) balances(ctx context.Context, userID string) (*calculator.Balances, error) {
	people, err := s.store.ListPeople(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeBalances(models.Names(people), expenses), nil
}

// settle computes the live settlement. An inconsistent ledger is reported
// but the best-effort transactions are still returned.
func (s *LedgerService) settle(ctx context.Context, userID string) (*calculator.Settlement, error) {
	balances, err := s.balances(ctx, userID)
	if err != nil {
		return nil, err
	}
	settlement := calculator.Settle(balances)
	if err := settlement.Check(); err != nil {
		s.metrics.InvariantViolation()
		slog.Error("Settlement invariant violated", "user_id", userID, "error", err)
	}
	s.metrics.ObserveSettlement(len(settlement.Transactions))
	return settlement, nil
}

func (s *LedgerService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (s *LedgerService) recordLookup(hit bool) {
	if s.cache != nil {
		s.metrics.CacheLookup(hit)
	}
}
