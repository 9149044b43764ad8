// Package memory provides an in-memory implementation of the storage.Store
// interface, used in tests and as a zero-setup dev backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps all records in process memory. All methods copy on the way in
// and out so callers can never alias internal state.
type Store struct {
	mu          sync.RWMutex
	usersByID   map[string]*models.User
	usersByName map[string]*models.User
	groups      map[string]*models.Group
	groupOrder  []string
	expenses    map[string][]*models.Expense // keyed by group ID, append order
	payments    map[string][]*models.Payment // keyed by group ID, append order
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		usersByID:   make(map[string]*models.User),
		usersByName: make(map[string]*models.User),
		groups:      make(map[string]*models.Group),
		expenses:    make(map[string][]*models.Expense),
		payments:    make(map[string][]*models.Payment),
	}
}

// EnsureUsers resolves names to users, creating missing ones.
func (s *Store) EnsureUsers(ctx context.Context, names []string) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.User, len(names))
	for i, name := range names {
		user, ok := s.usersByName[name]
		if !ok {
			user = &models.User{
				ID:        uuid.New().String(),
				Name:      name,
				CreatedAt: time.Now().Unix(),
			}
			s.usersByID[user.ID] = user
			s.usersByName[user.Name] = user
		}
		u := *user
		users[i] = &u
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, userID)
	}
	u := *user
	return &u, nil
}

// CreateGroup persists a new group, assigning its ID and CreatedAt.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.groups[group.ID] = copyGroup(group)
	s.groupOrder = append(s.groupOrder, group.ID)
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	return copyGroup(group), nil
}

// ListGroups retrieves all groups in creation order.
func (s *Store) ListGroups(ctx context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*models.Group, 0, len(s.groupOrder))
	for _, id := range s.groupOrder {
		groups = append(groups, copyGroup(s.groups[id]))
	}
	return groups, nil
}

// ListGroupsByUser retrieves every group the user belongs to.
func (s *Store) ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []*models.Group
	for _, id := range s.groupOrder {
		if s.groups[id].HasMember(userID) {
			groups = append(groups, copyGroup(s.groups[id]))
		}
	}
	return groups, nil
}

// AddGroupMembers appends members to an existing group.
func (s *Store) AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	group.Members = append(group.Members, members...)
	return nil
}

// CreateExpense appends an expense, assigning its ID and CreatedAt.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[expense.GroupID]; !ok {
		return fmt.Errorf("%w: group %s", models.ErrNotFound, expense.GroupID)
	}
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	s.expenses[expense.GroupID] = append(s.expenses[expense.GroupID], copyExpense(expense))
	return nil
}

// ListExpensesByGroup retrieves a group's expenses in append order.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.groups[groupID]; !ok {
		return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	expenses := make([]*models.Expense, 0, len(s.expenses[groupID]))
	for _, e := range s.expenses[groupID] {
		expenses = append(expenses, copyExpense(e))
	}
	return expenses, nil
}

// ListRecentExpenses retrieves the newest expenses across all groups.
func (s *Store) ListRecentExpenses(ctx context.Context, limit int) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*models.Expense
	for _, groupExpenses := range s.expenses {
		all = append(all, groupExpenses...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	expenses := make([]*models.Expense, len(all))
	for i, e := range all {
		expenses[i] = copyExpense(e)
	}
	return expenses, nil
}

// CreatePayment records a payment, assigning its ID and CreatedAt.
func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[payment.GroupID]; !ok {
		return fmt.Errorf("%w: group %s", models.ErrNotFound, payment.GroupID)
	}
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	p := *payment
	s.payments[payment.GroupID] = append(s.payments[payment.GroupID], &p)
	return nil
}

// ListPaymentsByGroup retrieves a group's payments in append order.
func (s *Store) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.groups[groupID]; !ok {
		return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	payments := make([]*models.Payment, 0, len(s.payments[groupID]))
	for _, p := range s.payments[groupID] {
		cp := *p
		payments = append(payments, &cp)
	}
	return payments, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

func copyGroup(g *models.Group) *models.Group {
	cp := *g
	cp.Members = append([]models.Member(nil), g.Members...)
	return &cp
}

func copyExpense(e *models.Expense) *models.Expense {
	cp := *e
	cp.ParticipantIDs = append([]string(nil), e.ParticipantIDs...)
	if e.Split.Percents != nil {
		cp.Split.Percents = make(map[string]int64, len(e.Split.Percents))
		for id, w := range e.Split.Percents {
			cp.Split.Percents[id] = w
		}
	}
	return &cp
}
