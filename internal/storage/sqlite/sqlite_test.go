package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitwise-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestGroup(t *testing.T, store *SQLiteStore, names ...string) *models.Group {
	t.Helper()
	ctx := context.Background()

	users, err := store.EnsureUsers(ctx, names)
	if err != nil {
		t.Fatalf("EnsureUsers failed: %v", err)
	}
	group := &models.Group{Name: "Test Group"}
	for _, u := range users {
		group.Members = append(group.Members, models.Member{UserID: u.ID, Name: u.Name})
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("EnsureUsers creates then reuses", func(t *testing.T) {
		first, err := store.EnsureUsers(ctx, []string{"Alice", "Bob"})
		if err != nil {
			t.Fatalf("EnsureUsers failed: %v", err)
		}
		if len(first) != 2 || first[0].ID == "" || first[1].ID == "" {
			t.Fatalf("expected 2 users with IDs, got %v", first)
		}

		second, err := store.EnsureUsers(ctx, []string{"Bob", "Charlie"})
		if err != nil {
			t.Fatalf("EnsureUsers failed: %v", err)
		}
		if second[0].ID != first[1].ID {
			t.Errorf("Bob resolved to %s, want %s", second[0].ID, first[1].ID)
		}
		if second[1].ID == first[0].ID || second[1].ID == first[1].ID {
			t.Errorf("Charlie should get a fresh ID, got %s", second[1].ID)
		}
	})

	t.Run("CreateGroup preserves member order", func(t *testing.T) {
		group := createTestGroup(t, store, "Charlie", "Alice", "Bob")

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		wantOrder := []string{"Charlie", "Alice", "Bob"}
		if len(retrieved.Members) != len(wantOrder) {
			t.Fatalf("members count = %d, want %d", len(retrieved.Members), len(wantOrder))
		}
		for i, name := range wantOrder {
			if retrieved.Members[i].Name != name {
				t.Errorf("member %d = %s, want %s", i, retrieved.Members[i].Name, name)
			}
		}
	})

	t.Run("GetGroup returns ErrNotFound for nonexistent group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("AddGroupMembers appends after existing members", func(t *testing.T) {
		group := createTestGroup(t, store, "Dana", "Eve")

		users, err := store.EnsureUsers(ctx, []string{"Frank"})
		if err != nil {
			t.Fatalf("EnsureUsers failed: %v", err)
		}
		err = store.AddGroupMembers(ctx, group.ID, []models.Member{
			{UserID: users[0].ID, Name: users[0].Name},
		})
		if err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Members) != 3 || retrieved.Members[2].Name != "Frank" {
			t.Errorf("unexpected members: %v", retrieved.Members)
		}
	})

	t.Run("ListGroupsByUser filters by membership", func(t *testing.T) {
		users, err := store.EnsureUsers(ctx, []string{"Grace", "Heidi", "Ivan"})
		if err != nil {
			t.Fatalf("EnsureUsers failed: %v", err)
		}
		g1 := &models.Group{Name: "First", Members: []models.Member{
			{UserID: users[0].ID, Name: users[0].Name},
			{UserID: users[1].ID, Name: users[1].Name},
		}}
		g2 := &models.Group{Name: "Second", Members: []models.Member{
			{UserID: users[1].ID, Name: users[1].Name},
			{UserID: users[2].ID, Name: users[2].Name},
		}}
		if err := store.CreateGroup(ctx, g1); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.CreateGroup(ctx, g2); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		groups, err := store.ListGroupsByUser(ctx, users[1].ID)
		if err != nil {
			t.Fatalf("ListGroupsByUser failed: %v", err)
		}
		if len(groups) != 2 {
			t.Errorf("Heidi's groups = %d, want 2", len(groups))
		}

		groups, err = store.ListGroupsByUser(ctx, users[2].ID)
		if err != nil {
			t.Fatalf("ListGroupsByUser failed: %v", err)
		}
		if len(groups) != 1 || groups[0].Name != "Second" {
			t.Errorf("Ivan's groups = %v, want [Second]", groups)
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := createTestGroup(t, store, "Alice", "Bob", "Charlie")
	alice, bob, charlie := group.Members[0], group.Members[1], group.Members[2]

	t.Run("CreateExpense round-trips equal split", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:        group.ID,
			Description:    "Dinner",
			Amount:         9000,
			PayerID:        alice.UserID,
			Split:          models.SplitRule{Type: models.SplitEqual},
			ParticipantIDs: []string{alice.UserID, bob.UserID, charlie.UserID},
			CreatedAt:      100,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("expenses = %d, want 1", len(expenses))
		}
		got := expenses[0]
		if got.Amount != 9000 || got.PayerID != alice.UserID || got.Split.Type != models.SplitEqual {
			t.Errorf("unexpected expense: %+v", got)
		}
		if len(got.ParticipantIDs) != 3 {
			t.Errorf("participants = %v, want 3", got.ParticipantIDs)
		}
		if got.Split.Percents != nil {
			t.Errorf("equal split should have no percents, got %v", got.Split.Percents)
		}
	})

	t.Run("CreateExpense round-trips percentage weights", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Cab",
			Amount:      500,
			PayerID:     bob.UserID,
			Split: models.SplitRule{
				Type:     models.SplitPercentage,
				Percents: map[string]int64{alice.UserID: 60, bob.UserID: 40},
			},
			ParticipantIDs: []string{alice.UserID, bob.UserID},
			CreatedAt:      200,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		var got *models.Expense
		for _, e := range expenses {
			if e.ID == expense.ID {
				got = e
			}
		}
		if got == nil {
			t.Fatal("percentage expense not found")
		}
		if got.Split.Percents[alice.UserID] != 60 || got.Split.Percents[bob.UserID] != 40 {
			t.Errorf("percents = %v, want alice:60 bob:40", got.Split.Percents)
		}
	})

	t.Run("ListRecentExpenses returns newest first", func(t *testing.T) {
		recent, err := store.ListRecentExpenses(ctx, 1)
		if err != nil {
			t.Fatalf("ListRecentExpenses failed: %v", err)
		}
		if len(recent) != 1 || recent[0].Description != "Cab" {
			t.Errorf("recent = %v, want [Cab]", recent)
		}
	})

	t.Run("ListExpensesByGroup rejects nonexistent group", func(t *testing.T) {
		_, err := store.ListExpensesByGroup(ctx, "nonexistent-id")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStorePayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := createTestGroup(t, store, "Alice", "Bob")
	alice, bob := group.Members[0], group.Members[1]

	payment := &models.Payment{
		GroupID:    group.ID,
		FromUserID: bob.UserID,
		ToUserID:   alice.UserID,
		Amount:     1500,
		Note:       "settling dinner",
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	if payment.ID == "" || payment.CreatedAt == 0 {
		t.Error("expected ID and CreatedAt to be set")
	}

	payments, err := store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByGroup failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(payments))
	}
	got := payments[0]
	if got.FromUserID != bob.UserID || got.ToUserID != alice.UserID || got.Amount != 1500 {
		t.Errorf("unexpected payment: %+v", got)
	}
	if got.Note != "settling dinner" {
		t.Errorf("note = %q, want %q", got.Note, "settling dinner")
	}
}
