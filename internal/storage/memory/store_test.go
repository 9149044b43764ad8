package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

func TestStoreBasics(t *testing.T) {
	store := New()
	ctx := context.Background()

	users, err := store.EnsureUsers(ctx, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("EnsureUsers failed: %v", err)
	}

	group := &models.Group{Name: "Trip", Members: []models.Member{
		{UserID: users[0].ID, Name: "Alice"},
		{UserID: users[1].ID, Name: "Bob"},
	}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" || group.CreatedAt == 0 {
		t.Fatal("expected ID and CreatedAt to be assigned")
	}

	again, err := store.EnsureUsers(ctx, []string{"Alice"})
	if err != nil {
		t.Fatalf("EnsureUsers failed: %v", err)
	}
	if again[0].ID != users[0].ID {
		t.Errorf("Alice resolved to %s, want %s", again[0].ID, users[0].ID)
	}

	if _, err := store.GetGroup(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// Mutating a returned group must not leak back into the store.
func TestStoreReturnsCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	users, _ := store.EnsureUsers(ctx, []string{"Alice", "Bob"})
	group := &models.Group{Name: "Trip", Members: []models.Member{
		{UserID: users[0].ID, Name: "Alice"},
		{UserID: users[1].ID, Name: "Bob"},
	}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	got.Members[0].Name = "Mallory"
	got.Name = "Hijacked"

	fresh, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if fresh.Name != "Trip" || fresh.Members[0].Name != "Alice" {
		t.Errorf("store state mutated through returned copy: %+v", fresh)
	}
}

func TestStoreRecentExpenses(t *testing.T) {
	store := New()
	ctx := context.Background()

	users, _ := store.EnsureUsers(ctx, []string{"Alice", "Bob"})
	group := &models.Group{Name: "Trip", Members: []models.Member{
		{UserID: users[0].ID, Name: "Alice"},
		{UserID: users[1].ID, Name: "Bob"},
	}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	for i, desc := range []string{"first", "second", "third"} {
		e := &models.Expense{
			GroupID:        group.ID,
			Description:    desc,
			Amount:         100,
			PayerID:        users[0].ID,
			Split:          models.SplitRule{Type: models.SplitEqual},
			ParticipantIDs: []string{users[0].ID, users[1].ID},
			CreatedAt:      int64(i + 1),
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	recent, err := store.ListRecentExpenses(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentExpenses failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Description != "third" || recent[1].Description != "second" {
		t.Errorf("recent = %v, want [third second]", recent)
	}
}
