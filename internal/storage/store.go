// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist for the owner.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a uniquely named record already exists.
	ErrAlreadyExists = errors.New("already exists")
)

// ArchiveFunc computes the archive plan from the ledger read inside the
// archive transaction. persons are in creation order, expenses oldest first.
type ArchiveFunc func(persons []string, expenses []models.Expense) (*models.ArchivePlan, error)

// Store defines the interface for ledger storage operations.
// Every method is scoped to a ledger owner; records of other owners are
// never visible. This abstraction allows swapping storage backends without
// changing the service layer.
type Store interface {
	// EnsureUser records a ledger owner. It reports whether the user was
	// created by this call.
	EnsureUser(ctx context.Context, userID string) (*models.User, bool, error)

	// CreatePerson adds a person to the owner's ledger. The ID and CreatedAt
	// fields are populated by the store. When foldCase is set, an existing
	// name differing only in case counts as a duplicate.
	// Returns ErrAlreadyExists for duplicates.
	CreatePerson(ctx context.Context, person *models.Person, foldCase bool) error

	// ListPeople returns the owner's people in creation order.
	ListPeople(ctx context.Context, userID string) ([]models.Person, error)

	// DeletePerson removes a person. Expenses referencing the name are kept.
	// Returns ErrNotFound if the person does not exist.
	DeletePerson(ctx context.Context, userID, personID string) error

	// CreateGroup persists a new group and populates its ID and CreatedAt.
	// Returns ErrAlreadyExists if a group with the same name (ignoring case) exists.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID.
	GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error)

	// ListGroups returns the owner's groups, newest first.
	ListGroups(ctx context.Context, userID string) ([]models.Group, error)

	// DeleteGroup removes a group. Returns ErrNotFound if it does not exist.
	DeleteGroup(ctx context.Context, userID, groupID string) error

	// CreateExpense persists a new expense. ID, Date and Timestamp are
	// populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns the owner's active expenses, oldest first.
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)

	// ResetExpenses deletes all of the owner's active expenses and returns
	// how many were removed. People, groups and journeys are kept.
	ResetExpenses(ctx context.Context, userID string) (int64, error)

	// ArchiveLedger reads the owner's people and expenses, calls build and
	// stores the resulting Journey while deleting exactly the expenses named
	// by the plan, all in one transaction. If any step fails nothing changes.
	ArchiveLedger(ctx context.Context, userID string, build ArchiveFunc) (*models.Journey, error)

	// ListJourneys returns the owner's journeys, newest first.
	ListJourneys(ctx context.Context, userID string) ([]models.Journey, error)

	// GetJourney retrieves a journey by its ID.
	GetJourney(ctx context.Context, userID, journeyID string) (*models.Journey, error)

	// Close releases any resources held by the store.
	Close() error
}
