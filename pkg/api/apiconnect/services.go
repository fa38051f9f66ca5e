// Package apiconnect wires the settleup.v1 services to Connect handlers and
// clients, using JSONCodec for every procedure.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

const (
	UserServiceName    = "settleup.v1.UserService"
	LedgerServiceName  = "settleup.v1.LedgerService"
	GroupServiceName   = "settleup.v1.GroupService"
	JourneyServiceName = "settleup.v1.JourneyService"
)

const (
	UserServiceInitUserProcedure = "/settleup.v1.UserService/InitUser"

	LedgerServiceListPeopleProcedure    = "/settleup.v1.LedgerService/ListPeople"
	LedgerServiceAddPersonProcedure     = "/settleup.v1.LedgerService/AddPerson"
	LedgerServiceListFriendsProcedure   = "/settleup.v1.LedgerService/ListFriends"
	LedgerServiceAddFriendProcedure     = "/settleup.v1.LedgerService/AddFriend"
	LedgerServiceDeleteFriendProcedure  = "/settleup.v1.LedgerService/DeleteFriend"
	LedgerServiceListExpensesProcedure  = "/settleup.v1.LedgerService/ListExpenses"
	LedgerServiceListActivityProcedure  = "/settleup.v1.LedgerService/ListActivity"
	LedgerServiceAddExpenseProcedure    = "/settleup.v1.LedgerService/AddExpense"
	LedgerServiceGetSettlementProcedure = "/settleup.v1.LedgerService/GetSettlement"
	LedgerServiceGetBalancesProcedure   = "/settleup.v1.LedgerService/GetBalances"
	LedgerServiceResetExpensesProcedure = "/settleup.v1.LedgerService/ResetExpenses"

	GroupServiceListGroupsProcedure  = "/settleup.v1.GroupService/ListGroups"
	GroupServiceCreateGroupProcedure = "/settleup.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure    = "/settleup.v1.GroupService/GetGroup"
	GroupServiceDeleteGroupProcedure = "/settleup.v1.GroupService/DeleteGroup"

	JourneyServiceListJourneysProcedure   = "/settleup.v1.JourneyService/ListJourneys"
	JourneyServiceGetJourneyProcedure     = "/settleup.v1.JourneyService/GetJourney"
	JourneyServiceArchiveJourneyProcedure = "/settleup.v1.JourneyService/ArchiveJourney"
)

// IsProcedure reports whether path addresses one of the settleup.v1 services.
func IsProcedure(path string) bool {
	return strings.HasPrefix(path, "/settleup.v1.")
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// router dispatches on the full procedure path.
type router map[string]http.Handler

func (r router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

// UserServiceHandler is implemented by the user service.
type UserServiceHandler interface {
	InitUser(context.Context, *connect.Request[api.InitUserRequest]) (*connect.Response[api.InitUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + UserServiceName + "/", router{
		UserServiceInitUserProcedure: connect.NewUnaryHandler(UserServiceInitUserProcedure, svc.InitUser, opts...),
	}
}

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	DeleteFriend(context.Context, *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListActivity(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	AddExpense(context.Context, *connect.Request[api.Expense]) (*connect.Response[api.Expense], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ResetExpenses(context.Context, *connect.Request[api.ResetExpensesRequest]) (*connect.Response[api.ResetExpensesResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LedgerServiceName + "/", router{
		LedgerServiceListPeopleProcedure:    connect.NewUnaryHandler(LedgerServiceListPeopleProcedure, svc.ListPeople, opts...),
		LedgerServiceAddPersonProcedure:     connect.NewUnaryHandler(LedgerServiceAddPersonProcedure, svc.AddPerson, opts...),
		LedgerServiceListFriendsProcedure:   connect.NewUnaryHandler(LedgerServiceListFriendsProcedure, svc.ListFriends, opts...),
		LedgerServiceAddFriendProcedure:     connect.NewUnaryHandler(LedgerServiceAddFriendProcedure, svc.AddFriend, opts...),
		LedgerServiceDeleteFriendProcedure:  connect.NewUnaryHandler(LedgerServiceDeleteFriendProcedure, svc.DeleteFriend, opts...),
		LedgerServiceListExpensesProcedure:  connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceListActivityProcedure:  connect.NewUnaryHandler(LedgerServiceListActivityProcedure, svc.ListActivity, opts...),
		LedgerServiceAddExpenseProcedure:    connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceGetSettlementProcedure: connect.NewUnaryHandler(LedgerServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		LedgerServiceGetBalancesProcedure:   connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...),
		LedgerServiceResetExpensesProcedure: connect.NewUnaryHandler(LedgerServiceResetExpensesProcedure, svc.ResetExpenses, opts...),
	}
}

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", router{
		GroupServiceListGroupsProcedure:  connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceCreateGroupProcedure: connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:    connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceDeleteGroupProcedure: connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
	}
}

// JourneyServiceHandler is implemented by the journey service.
type JourneyServiceHandler interface {
	ListJourneys(context.Context, *connect.Request[api.ListJourneysRequest]) (*connect.Response[api.ListJourneysResponse], error)
	GetJourney(context.Context, *connect.Request[api.GetJourneyRequest]) (*connect.Response[api.GetJourneyResponse], error)
	ArchiveJourney(context.Context, *connect.Request[api.ArchiveJourneyRequest]) (*connect.Response[api.ArchiveJourneyResponse], error)
}

// NewJourneyServiceHandler builds an HTTP handler from the service implementation.
func NewJourneyServiceHandler(svc JourneyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + JourneyServiceName + "/", router{
		JourneyServiceListJourneysProcedure:   connect.NewUnaryHandler(JourneyServiceListJourneysProcedure, svc.ListJourneys, opts...),
		JourneyServiceGetJourneyProcedure:     connect.NewUnaryHandler(JourneyServiceGetJourneyProcedure, svc.GetJourney, opts...),
		JourneyServiceArchiveJourneyProcedure: connect.NewUnaryHandler(JourneyServiceArchiveJourneyProcedure, svc.ArchiveJourney, opts...),
	}
}
