// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, in-memory,
// PostgreSQL, etc.) without changing the service layer.
//
// Lookup methods return errors wrapping models.ErrNotFound for missing
// records. List methods return records in creation order unless stated
// otherwise. Stores must be safe for concurrent use; the service layer
// additionally serializes writes per group.
type Store interface {
	// EnsureUsers resolves display names to users, creating any that don't
	// exist yet, and returns them in input order.
	EnsureUsers(ctx context.Context, names []string) ([]*models.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// CreateGroup persists a new group with its ordered member list.
	// The group's ID and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, members in insertion order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// ListGroupsByUser retrieves every group the user is a member of.
	ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers appends members to a group. The member set only
	// grows; callers are responsible for rejecting duplicates first.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// CreateExpense appends an expense to its group's history. The
	// expense's ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves a group's full expense history.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListRecentExpenses retrieves the newest expenses across all groups,
	// newest first, at most limit entries.
	ListRecentExpenses(ctx context.Context, limit int) ([]*models.Expense, error)

	// CreatePayment records a settle-up payment. The payment's ID and
	// CreatedAt are populated by the store.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByGroup retrieves a group's recorded payments.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
