package service

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	client := newTestEnv(t).groups

	resp, err := client.CreateGroup(context.Background(), as("u1", &api.CreateGroupRequest{
		Name:    "Roommates",
		Members: []string{"Alice", "Bob", "Charlie"},
	}))

	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if resp.Msg.Group.ID == "" {
		t.Error("expected non-empty group ID")
	}

	if resp.Msg.Group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", resp.Msg.Group.Name)
	}

	if len(resp.Msg.Group.Members) != 3 {
		t.Errorf("members: expected 3, got %d", len(resp.Msg.Group.Members))
	}

	if resp.Msg.Group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroup_Invalid(t *testing.T) {
	client := newTestEnv(t).groups

	tests := []struct {
		name string
		req  *api.CreateGroupRequest
	}{
		{"empty name", &api.CreateGroupRequest{Name: " ", Members: []string{"A"}}},
		{"no members", &api.CreateGroupRequest{Name: "Solo"}},
		{"blank member", &api.CreateGroupRequest{Name: "Trip", Members: []string{"A", "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateGroup(context.Background(), as("u1", tt.req))
			if code := connect.CodeOf(err); code != connect.CodeInvalidArgument {
				t.Errorf("expected CodeInvalidArgument, got %v (%v)", code, err)
			}
		})
	}
}

func TestCreateGroup_Duplicate(t *testing.T) {
	client := newTestEnv(t).groups

	_, err := client.CreateGroup(context.Background(), as("u1", &api.CreateGroupRequest{
		Name:    "Ski Trip",
		Members: []string{"A"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	_, err = client.CreateGroup(context.Background(), as("u1", &api.CreateGroupRequest{
		Name:    "ski trip",
		Members: []string{"B"},
	}))
	if code := connect.CodeOf(err); code != connect.CodeAlreadyExists {
		t.Errorf("expected CodeAlreadyExists, got %v", code)
	}

	// Another owner may use the same name.
	_, err = client.CreateGroup(context.Background(), as("u2", &api.CreateGroupRequest{
		Name:    "Ski Trip",
		Members: []string{"C"},
	}))
	if err != nil {
		t.Errorf("CreateGroup for other owner failed: %v", err)
	}
}

func TestGetGroup(t *testing.T) {
	client := newTestEnv(t).groups

	// Create a group first
	createResp, err := client.CreateGroup(context.Background(), as("u1", &api.CreateGroupRequest{
		Name:    "Work Lunch",
		Members: []string{"Diana", "Eve"},
	}))

	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	getResp, err := client.GetGroup(context.Background(), as("u1", &api.GetGroupRequest{
		ID: createResp.Msg.Group.ID,
	}))

	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}

	if getResp.Msg.Group.Name != "Work Lunch" {
		t.Errorf("name: expected 'Work Lunch', got '%s'", getResp.Msg.Group.Name)
	}

	if len(getResp.Msg.Group.Members) != 2 || getResp.Msg.Group.Members[0] != "Diana" {
		t.Errorf("members: expected [Diana Eve], got %v", getResp.Msg.Group.Members)
	}

	// Groups are scoped to their owner.
	_, err = client.GetGroup(context.Background(), as("u2", &api.GetGroupRequest{
		ID: createResp.Msg.Group.ID,
	}))
	if code := connect.CodeOf(err); code != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound for other owner, got %v", code)
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	client := newTestEnv(t).groups

	_, err := client.GetGroup(context.Background(), as("u1", &api.GetGroupRequest{
		ID: "nonexistent-id",
	}))

	if err == nil {
		t.Fatal("expected error for nonexistent group")
	}

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}

	if connectErr.Code() != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %v", connectErr.Code())
	}
}

func TestListGroups(t *testing.T) {
	client := newTestEnv(t).groups

	for _, name := range []string{"Group A", "Group B"} {
		_, err := client.CreateGroup(context.Background(), as("u1", &api.CreateGroupRequest{
			Name:    name,
			Members: []string{"M1", "M2"},
		}))
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
	}

	listResp, err := client.ListGroups(context.Background(), as("u1", &api.ListGroupsRequest{}))

	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}

	if len(listResp.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(listResp.Msg.Groups))
	}

	// Newest first
	if listResp.Msg.Groups[0].Name != "Group B" {
		t.Errorf("expected 'Group B' first, got '%s'", listResp.Msg.Groups[0].Name)
	}

	for _, g := range listResp.Msg.Groups {
		if len(g.Members) == 0 {
			t.Errorf("group %s has no members", g.Name)
		}
	}
}

func TestListGroups_Empty(t *testing.T) {
	client := newTestEnv(t).groups

	listResp, err := client.ListGroups(context.Background(), as("u1", &api.ListGroupsRequest{}))

	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}

	if len(listResp.Msg.Groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(listResp.Msg.Groups))
	}
}

func TestDeleteGroup(t *testing.T) {
	client := newTestEnv(t).groups

	createResp, err := client.CreateGroup(context.Background(), as("u1", &api.CreateGroupRequest{
		Name:    "To Be Deleted",
		Members: []string{"Delete", "Me"},
	}))

	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	groupID := createResp.Msg.Group.ID

	_, err = client.DeleteGroup(context.Background(), as("u1", &api.DeleteGroupRequest{ID: groupID}))

	if err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	// Verify it's deleted
	_, err = client.GetGroup(context.Background(), as("u1", &api.GetGroupRequest{ID: groupID}))

	if err == nil {
		t.Error("expected error getting deleted group")
	}
}

func TestDeleteGroup_NotFound(t *testing.T) {
	client := newTestEnv(t).groups

	_, err := client.DeleteGroup(context.Background(), as("u1", &api.DeleteGroupRequest{
		ID: "nonexistent-id",
	}))

	if code := connect.CodeOf(err); code != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %v", code)
	}
}
