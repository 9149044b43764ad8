package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakshiv-ermaa/splitwise-app/internal/calculator"
	"github.com/sakshiv-ermaa/splitwise-app/internal/metrics"
	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage"
)

// LedgerService owns the append-only expense history. Every validation runs
// before any state is touched, so a rejected request leaves the ledger
// unchanged, and per-group locking keeps appends to one group linearized.
type LedgerService struct {
	store storage.Store
	locks *GroupLocks
}

// NewLedgerService creates a new LedgerService with the given storage
// backend and lock registry.
func NewLedgerService(store storage.Store, locks *GroupLocks) *LedgerService {
	return &LedgerService{store: store, locks: locks}
}

// AddExpense validates and appends an expense. An empty participant list
// means the expense is shared by the whole group. Split errors are wrapped
// so callers can match both ErrInvalidExpense and ErrInvalidSplit.
func (s *LedgerService) AddExpense(ctx context.Context, groupID, description string, amount int64, payerID string, rule models.SplitRule, participantIDs []string) (*models.Expense, error) {
	slog.Info("AddExpense request received",
		"group_id", groupID,
		"amount", amount,
		"payer_id", payerID,
		"split_type", rule.Type,
	)

	lock := s.locks.get(groupID)
	lock.Lock()
	defer lock.Unlock()

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", models.ErrInvalidExpense)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", models.ErrInvalidExpense, amount)
	}
	if !group.HasMember(payerID) {
		return nil, fmt.Errorf("%w: payer %s is not a member of group %s", models.ErrInvalidExpense, payerID, groupID)
	}

	if len(participantIDs) == 0 {
		participantIDs = group.MemberIDs()
	}
	ordered, err := orderParticipants(group, participantIDs)
	if err != nil {
		return nil, err
	}

	// Dry-run the split so invalid rules never reach storage.
	if _, err := calculator.ComputeShares(amount, rule, ordered); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidExpense, err)
	}

	expense := &models.Expense{
		GroupID:        groupID,
		Description:    description,
		Amount:         amount,
		PayerID:        payerID,
		Split:          rule,
		ParticipantIDs: ordered,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	metrics.ExpensesRecorded.Inc()
	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"group_id", groupID,
		"amount", amount,
		"participants_count", len(ordered),
	)
	return expense, nil
}

// RecordPayment appends a settle-up payment from one member to another.
func (s *LedgerService) RecordPayment(ctx context.Context, groupID, fromUserID, toUserID string, amount int64, note string) (*models.Payment, error) {
	slog.Info("RecordPayment request received",
		"group_id", groupID,
		"from_user_id", fromUserID,
		"to_user_id", toUserID,
		"amount", amount,
	)

	lock := s.locks.get(groupID)
	lock.Lock()
	defer lock.Unlock()

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", models.ErrInvalidPayment, amount)
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("%w: payer and payee must differ", models.ErrInvalidPayment)
	}
	if !group.HasMember(fromUserID) {
		return nil, fmt.Errorf("%w: payer %s is not a member of group %s", models.ErrInvalidPayment, fromUserID, groupID)
	}
	if !group.HasMember(toUserID) {
		return nil, fmt.Errorf("%w: payee %s is not a member of group %s", models.ErrInvalidPayment, toUserID, groupID)
	}

	payment := &models.Payment{
		GroupID:    groupID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Note:       strings.TrimSpace(note),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "group_id", groupID, "error", err)
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()
	slog.Info("Payment recorded", "payment_id", payment.ID, "group_id", groupID, "amount", amount)
	return payment, nil
}

// RecentExpenses retrieves the newest expenses across all groups.
func (s *LedgerService) RecentExpenses(ctx context.Context, limit int) ([]*models.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListRecentExpenses(ctx, limit)
}

// orderParticipants validates a participant set against the group and maps
// it onto the group's canonical member order.
func orderParticipants(group *models.Group, ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate participant %s", models.ErrInvalidExpense, id)
		}
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: participant %s is not a member of group %s", models.ErrInvalidExpense, id, group.ID)
		}
		seen[id] = true
	}
	ordered := make([]string, 0, len(ids))
	for _, m := range group.Members {
		if seen[m.UserID] {
			ordered = append(ordered, m.UserID)
		}
	}
	return ordered, nil
}
