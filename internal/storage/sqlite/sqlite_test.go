package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func addPeople(t *testing.T, store *SQLiteStore, userID string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, store.CreatePerson(context.Background(), &models.Person{UserID: userID, Name: name}, false))
	}
}

func TestNewIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Ping(context.Background()))
}

func TestEnsureUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, created, err := store.EnsureUser(ctx, "device-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "device-1", user.ID)
	assert.NotZero(t, user.CreatedAt)

	again, created, err := store.EnsureUser(ctx, "device-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.CreatedAt, again.CreatedAt)
}

func TestPeople(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreatePerson generates ID and keeps insertion order", func(t *testing.T) {
		addPeople(t, store, "u1", "Charlie", "alice", "Bob")

		people, err := store.ListPeople(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie", "alice", "Bob"}, models.Names(people))
		for _, p := range people {
			assert.NotEmpty(t, p.ID)
			assert.NotZero(t, p.CreatedAt)
		}
	})

	t.Run("exact duplicate is rejected", func(t *testing.T) {
		err := store.CreatePerson(ctx, &models.Person{UserID: "u1", Name: "Bob"}, false)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("case-insensitive duplicate only when folding", func(t *testing.T) {
		err := store.CreatePerson(ctx, &models.Person{UserID: "u1", Name: "ALICE"}, true)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)

		require.NoError(t, store.CreatePerson(ctx, &models.Person{UserID: "u1", Name: "ALICE"}, false))
	})

	t.Run("owners are isolated", func(t *testing.T) {
		require.NoError(t, store.CreatePerson(ctx, &models.Person{UserID: "u2", Name: "Bob"}, true))

		people, err := store.ListPeople(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, []string{"Bob"}, models.Names(people))
	})

	t.Run("DeletePerson", func(t *testing.T) {
		people, err := store.ListPeople(ctx, "u1")
		require.NoError(t, err)
		target := people[0]

		assert.ErrorIs(t, store.DeletePerson(ctx, "u2", target.ID), storage.ErrNotFound)
		require.NoError(t, store.DeletePerson(ctx, "u1", target.ID))
		assert.ErrorIs(t, store.DeletePerson(ctx, "u1", target.ID), storage.ErrNotFound)

		people, err = store.ListPeople(ctx, "u1")
		require.NoError(t, err)
		assert.NotContains(t, models.Names(people), target.Name)
	})

	t.Run("empty ledger lists as empty slice", func(t *testing.T) {
		people, err := store.ListPeople(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, people)
		assert.Empty(t, people)
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Group{UserID: "u1", Name: "Ski Trip", Members: []string{"Zoe", "Adam", "Mia"}, CreatedAt: 100}
	require.NoError(t, store.CreateGroup(ctx, trip))
	assert.NotEmpty(t, trip.ID)

	flat := &models.Group{UserID: "u1", Name: "Roommates", Members: []string{"Adam"}, CreatedAt: 200}
	require.NoError(t, store.CreateGroup(ctx, flat))

	t.Run("duplicate name ignoring case", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{UserID: "u1", Name: "ski trip", Members: []string{"A"}})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("GetGroup keeps member order", func(t *testing.T) {
		got, err := store.GetGroup(ctx, "u1", trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ski Trip", got.Name)
		assert.Equal(t, []string{"Zoe", "Adam", "Mia"}, got.Members)

		_, err = store.GetGroup(ctx, "u2", trip.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListGroups newest first", func(t *testing.T) {
		groups, err := store.ListGroups(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "Roommates", groups[0].Name)
		assert.Equal(t, []string{"Adam"}, groups[0].Members)
		assert.Equal(t, "Ski Trip", groups[1].Name)
	})

	t.Run("DeleteGroup", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, "u1", flat.ID))
		assert.ErrorIs(t, store.DeleteGroup(ctx, "u1", flat.ID), storage.ErrNotFound)

		groups, err := store.ListGroups(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, groups, 1)
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	later := &models.Expense{
		UserID:        "u1",
		Payer:         "A",
		Amount:        10000,
		Description:   "Dinner",
		Beneficiaries: []string{"C", "B"},
		SplitType:     models.SplitUnequal,
		Splits:        map[string]money.Cents{"B": 7000, "C": 3000},
		Timestamp:     2000,
	}
	earlier := &models.Expense{
		UserID:        "u1",
		Payer:         "B",
		Amount:        999,
		Beneficiaries: []string{"A", "B", "C"},
		SplitType:     models.SplitEqual,
		Timestamp:     1000,
	}
	require.NoError(t, store.CreateExpense(ctx, later))
	require.NoError(t, store.CreateExpense(ctx, earlier))
	assert.NotEmpty(t, later.ID)
	assert.NotEmpty(t, later.Date)

	t.Run("ListExpenses oldest first with beneficiaries and splits", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, expenses, 2)

		assert.Equal(t, *earlier, expenses[0])
		assert.Nil(t, expenses[0].Splits)
		assert.Equal(t, *later, expenses[1])
	})

	t.Run("CreateExpense fills timestamp", func(t *testing.T) {
		e := &models.Expense{UserID: "u2", Payer: "A", Amount: 1, Beneficiaries: []string{"A"}, SplitType: models.SplitEqual}
		require.NoError(t, store.CreateExpense(ctx, e))
		assert.InDelta(t, time.Now().UnixMilli(), e.Timestamp, float64(time.Minute.Milliseconds()))
		assert.Equal(t, time.UnixMilli(e.Timestamp).Format(models.DateLayout), e.Date)
	})

	t.Run("ResetExpenses clears only the owner's expenses", func(t *testing.T) {
		n, err := store.ResetExpenses(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		expenses, err := store.ListExpenses(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, expenses)

		others, err := store.ListExpenses(ctx, "u2")
		require.NoError(t, err)
		assert.Len(t, others, 1)
	})
}

func archiveAs(userID, name string, now time.Time) storage.ArchiveFunc {
	return func(persons []string, expenses []models.Expense) (*models.ArchivePlan, error) {
		return calculator.ArchiveJourney(userID, name, persons, expenses, now)
	}
}

func TestArchiveLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	addPeople(t, store, "u1", "A", "B")
	require.NoError(t, store.CreateGroup(ctx, &models.Group{UserID: "u1", Name: "Pair", Members: []string{"A", "B"}}))

	expense := &models.Expense{
		UserID:        "u1",
		Payer:         "A",
		Amount:        10000,
		Beneficiaries: []string{"A", "B"},
		SplitType:     models.SplitEqual,
	}
	require.NoError(t, store.CreateExpense(ctx, expense))

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	journey, err := store.ArchiveLedger(ctx, "u1", archiveAs("u1", "Trip", now))
	require.NoError(t, err)

	assert.NotEmpty(t, journey.ID)
	assert.Equal(t, "u1", journey.UserID)
	assert.Equal(t, "Trip", journey.Name)
	assert.Equal(t, money.Cents(10000), journey.TotalAmount)
	assert.Equal(t, 1, journey.ExpenseCount)
	assert.Equal(t, 2, journey.PeopleCount)
	assert.Equal(t, []models.Transaction{{From: "B", To: "A", Amount: 5000}}, journey.Settlements)
	assert.Equal(t, []models.Expense{*expense}, journey.Expenses)

	expenses, err := store.ListExpenses(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, expenses)

	people, err := store.ListPeople(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, models.Names(people))

	groups, err := store.ListGroups(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	stored, err := store.GetJourney(ctx, "u1", journey.ID)
	require.NoError(t, err)
	assert.Equal(t, journey, stored)

	_, err = store.GetJourney(ctx, "u2", journey.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListJourneysNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"First", "Second", "Third"} {
		_, err := store.ArchiveLedger(ctx, "u1", archiveAs("u1", name, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	journeys, err := store.ListJourneys(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, journeys, 3)
	assert.Equal(t, "Third", journeys[0].Name)
	assert.Equal(t, "First", journeys[2].Name)
	assert.Empty(t, journeys[0].Expenses)

	none, err := store.ListJourneys(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestArchiveLedgerRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	addPeople(t, store, "u1", "A", "B")

	existing, err := store.ArchiveLedger(ctx, "u1", archiveAs("u1", "Empty", time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		UserID: "u1", Payer: "A", Amount: 500, Beneficiaries: []string{"B"}, SplitType: models.SplitEqual,
	}))

	assertUntouched := func(t *testing.T) {
		t.Helper()
		expenses, err := store.ListExpenses(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, expenses, 1)

		journeys, err := store.ListJourneys(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, journeys, 1)
	}

	t.Run("journey insert fails", func(t *testing.T) {
		_, err := store.ArchiveLedger(ctx, "u1", func(persons []string, expenses []models.Expense) (*models.ArchivePlan, error) {
			plan, err := calculator.ArchiveJourney("u1", "Clash", persons, expenses, time.Now())
			if err != nil {
				return nil, err
			}
			plan.Journey.ID = existing.ID
			return plan, nil
		})
		require.Error(t, err)
		assertUntouched(t)
	})

	t.Run("plan names an expense that is gone", func(t *testing.T) {
		_, err := store.ArchiveLedger(ctx, "u1", func(persons []string, expenses []models.Expense) (*models.ArchivePlan, error) {
			plan, err := calculator.ArchiveJourney("u1", "Stale", persons, expenses, time.Now())
			if err != nil {
				return nil, err
			}
			plan.Clear.ExpenseIDs = append(plan.Clear.ExpenseIDs, "missing")
			return plan, nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "removed 1 of 2")
		assertUntouched(t)
	})

	t.Run("build fails", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := store.ArchiveLedger(ctx, "u1", func([]string, []models.Expense) (*models.ArchivePlan, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assertUntouched(t)
	})

	t.Run("plan without an owner", func(t *testing.T) {
		_, err := store.ArchiveLedger(ctx, "u1", archiveAs("", "Anonymous", time.Now()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "archive plan clears ledger")
		assertUntouched(t)
	})

	t.Run("plan for another owner", func(t *testing.T) {
		_, err := store.ArchiveLedger(ctx, "u1", func(persons []string, expenses []models.Expense) (*models.ArchivePlan, error) {
			plan, err := calculator.ArchiveJourney("u1", "Other", persons, expenses, time.Now())
			if err != nil {
				return nil, err
			}
			plan.Clear.UserID = "u2"
			return plan, nil
		})
		require.Error(t, err)
		assertUntouched(t)
	})
}

func TestRepeatPlaceholder(t *testing.T) {
	assert.Equal(t, "", repeatPlaceholder(0))
	assert.Equal(t, ", ?, ?", repeatPlaceholder(2))

	clause, args := inClause([]any{"u1"}, []string{"a", "b"})
	assert.Equal(t, "(?, ?)", clause)
	assert.Equal(t, []any{"u1", "a", "b"}, args)
}
