package apiconnect

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// UserServiceClient is a client for settleup.v1.UserService.
type UserServiceClient struct {
	initUser *connect.Client[api.InitUserRequest, api.InitUserResponse]
}

// NewUserServiceClient constructs a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &UserServiceClient{
		initUser: connect.NewClient[api.InitUserRequest, api.InitUserResponse](httpClient, baseURL+UserServiceInitUserProcedure, opts...),
	}
}

func (c *UserServiceClient) InitUser(ctx context.Context, req *connect.Request[api.InitUserRequest]) (*connect.Response[api.InitUserResponse], error) {
	return c.initUser.CallUnary(ctx, req)
}

// LedgerServiceClient is a client for settleup.v1.LedgerService.
type LedgerServiceClient struct {
	listPeople    *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	addPerson     *connect.Client[api.AddPersonRequest, api.AddPersonResponse]
	listFriends   *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
	addFriend     *connect.Client[api.AddFriendRequest, api.AddFriendResponse]
	deleteFriend  *connect.Client[api.DeleteFriendRequest, api.DeleteFriendResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	listActivity  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	addExpense    *connect.Client[api.Expense, api.Expense]
	getSettlement *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	getBalances   *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	resetExpenses *connect.Client[api.ResetExpensesRequest, api.ResetExpensesResponse]
}

// NewLedgerServiceClient constructs a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		listPeople:    connect.NewClient[api.ListPeopleRequest, api.ListPeopleResponse](httpClient, baseURL+LedgerServiceListPeopleProcedure, opts...),
		addPerson:     connect.NewClient[api.AddPersonRequest, api.AddPersonResponse](httpClient, baseURL+LedgerServiceAddPersonProcedure, opts...),
		listFriends:   connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+LedgerServiceListFriendsProcedure, opts...),
		addFriend:     connect.NewClient[api.AddFriendRequest, api.AddFriendResponse](httpClient, baseURL+LedgerServiceAddFriendProcedure, opts...),
		deleteFriend:  connect.NewClient[api.DeleteFriendRequest, api.DeleteFriendResponse](httpClient, baseURL+LedgerServiceDeleteFriendProcedure, opts...),
		listExpenses:  connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		listActivity:  connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListActivityProcedure, opts...),
		addExpense:    connect.NewClient[api.Expense, api.Expense](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		getSettlement: connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+LedgerServiceGetSettlementProcedure, opts...),
		getBalances:   connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		resetExpenses: connect.NewClient[api.ResetExpensesRequest, api.ResetExpensesResponse](httpClient, baseURL+LedgerServiceResetExpensesProcedure, opts...),
	}
}

func (c *LedgerServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	return c.deleteFriend.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListActivity(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listActivity.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.Expense]) (*connect.Response[api.Expense], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ResetExpenses(ctx context.Context, req *connect.Request[api.ResetExpensesRequest]) (*connect.Response[api.ResetExpensesResponse], error) {
	return c.resetExpenses.CallUnary(ctx, req)
}

// GroupServiceClient is a client for settleup.v1.GroupService.
type GroupServiceClient struct {
	listGroups  *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	createGroup *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup    *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	deleteGroup *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
}

// NewGroupServiceClient constructs a client for the service at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &GroupServiceClient{
		listGroups:  connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:    connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		deleteGroup: connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
	}
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// JourneyServiceClient is a client for settleup.v1.JourneyService.
type JourneyServiceClient struct {
	listJourneys   *connect.Client[api.ListJourneysRequest, api.ListJourneysResponse]
	getJourney     *connect.Client[api.GetJourneyRequest, api.GetJourneyResponse]
	archiveJourney *connect.Client[api.ArchiveJourneyRequest, api.ArchiveJourneyResponse]
}

// NewJourneyServiceClient constructs a client for the service at baseURL.
func NewJourneyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *JourneyServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &JourneyServiceClient{
		listJourneys:   connect.NewClient[api.ListJourneysRequest, api.ListJourneysResponse](httpClient, baseURL+JourneyServiceListJourneysProcedure, opts...),
		getJourney:     connect.NewClient[api.GetJourneyRequest, api.GetJourneyResponse](httpClient, baseURL+JourneyServiceGetJourneyProcedure, opts...),
		archiveJourney: connect.NewClient[api.ArchiveJourneyRequest, api.ArchiveJourneyResponse](httpClient, baseURL+JourneyServiceArchiveJourneyProcedure, opts...),
	}
}

func (c *JourneyServiceClient) ListJourneys(ctx context.Context, req *connect.Request[api.ListJourneysRequest]) (*connect.Response[api.ListJourneysResponse], error) {
	return c.listJourneys.CallUnary(ctx, req)
}

func (c *JourneyServiceClient) GetJourney(ctx context.Context, req *connect.Request[api.GetJourneyRequest]) (*connect.Response[api.GetJourneyResponse], error) {
	return c.getJourney.CallUnary(ctx, req)
}

func (c *JourneyServiceClient) ArchiveJourney(ctx context.Context, req *connect.Request[api.ArchiveJourneyRequest]) (*connect.Response[api.ArchiveJourneyResponse], error) {
	return c.archiveJourney.CallUnary(ctx, req)
}
