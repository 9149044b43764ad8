package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sakshiv-ermaa/splitwise-app/internal/calculator"
	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage"
)

// MemberBalance is one member's position within a group.
type MemberBalance struct {
	UserID     string
	Name       string
	NetBalance int64 // positive = owed money, negative = owes money
}

// DebtEdge is a raw who-owes-whom entry from the pairwise balance view.
type DebtEdge struct {
	FromUserID string
	FromName   string
	ToUserID   string
	ToName     string
	Amount     int64
}

// GroupBalances bundles the two balance views a group exposes: per-member
// net positions and the unsimplified pairwise debts.
type GroupBalances struct {
	Group   *models.Group
	Members []MemberBalance
	Debts   []DebtEdge
}

// Suggestion is one settlement instruction, enriched with display names.
// Suggestions are computed fresh per query and never persisted.
type Suggestion struct {
	FromUserID string
	FromName   string
	ToUserID   string
	ToName     string
	Amount     int64
}

// CounterpartyBalance is one line of a user's cross-group breakdown.
// Positive means the counterparty owes the user.
type CounterpartyBalance struct {
	UserID string
	Name   string
	Amount int64
}

// Overview is a user's aggregate position across every group they belong to.
type Overview struct {
	UserID         string
	UserName       string
	TotalOwed      int64 // owed to the user
	TotalOwes      int64 // the user owes others
	NetBalance     int64 // TotalOwed - TotalOwes
	Counterparties []CounterpartyBalance
}

// BalanceService answers read-only balance queries. It never mutates state,
// and it takes each group's read lock while folding that group's history so
// a concurrent append can't tear the zero-sum invariant mid-computation.
type BalanceService struct {
	store storage.Store
	locks *GroupLocks
}

// NewBalanceService creates a new BalanceService sharing the ledger's lock
// registry.
func NewBalanceService(store storage.Store, locks *GroupLocks) *BalanceService {
	return &BalanceService{store: store, locks: locks}
}

// GroupBalances computes a group's member net positions and raw pairwise
// debts.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID string) (*GroupBalances, error) {
	group, pairwise, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	net := calculator.NetPositions(pairwise)
	result := &GroupBalances{Group: group}
	for _, m := range group.Members {
		result.Members = append(result.Members, MemberBalance{
			UserID:     m.UserID,
			Name:       m.Name,
			NetBalance: net[m.UserID],
		})
	}

	for pair, amt := range pairwise {
		edge := DebtEdge{Amount: amt}
		if amt > 0 { // B owes A
			edge.FromUserID, edge.ToUserID = pair.B, pair.A
		} else {
			edge.FromUserID, edge.ToUserID = pair.A, pair.B
			edge.Amount = -amt
		}
		edge.FromName = group.MemberName(edge.FromUserID)
		edge.ToName = group.MemberName(edge.ToUserID)
		result.Debts = append(result.Debts, edge)
	}
	sort.Slice(result.Debts, func(i, j int) bool {
		if result.Debts[i].Amount != result.Debts[j].Amount {
			return result.Debts[i].Amount > result.Debts[j].Amount
		}
		if result.Debts[i].FromUserID != result.Debts[j].FromUserID {
			return result.Debts[i].FromUserID < result.Debts[j].FromUserID
		}
		return result.Debts[i].ToUserID < result.Debts[j].ToUserID
	})

	return result, nil
}

// GroupSettlement reduces a group's balances to a short list of payments
// that would settle everyone. The greedy reduction needs at most one payment
// fewer than the member count; it is not guaranteed to be the true minimum.
func (s *BalanceService) GroupSettlement(ctx context.Context, groupID string) ([]Suggestion, error) {
	group, pairwise, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	txns := calculator.Simplify(calculator.NetPositions(pairwise))
	suggestions := make([]Suggestion, len(txns))
	for i, txn := range txns {
		suggestions[i] = Suggestion{
			FromUserID: txn.FromUserID,
			FromName:   group.MemberName(txn.FromUserID),
			ToUserID:   txn.ToUserID,
			ToName:     group.MemberName(txn.ToUserID),
			Amount:     txn.Amount,
		}
	}

	slog.Info("Settlement computed", "group_id", groupID, "transactions", len(suggestions))
	return suggestions, nil
}

// UserOverview aggregates a user's position across every group they belong
// to. Groups are folded concurrently; each one is read under its own lock.
func (s *BalanceService) UserOverview(ctx context.Context, userID string) (*Overview, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	perCounterparty := make(map[string]int64) // positive = they owe the user
	names := make(map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	for _, group := range groups {
		g.Go(func() error {
			_, pairwise, err := s.snapshot(gctx, group.ID)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for _, m := range group.Members {
				names[m.UserID] = m.Name
			}
			for pair, amt := range pairwise {
				switch userID {
				case pair.A:
					perCounterparty[pair.B] += amt
				case pair.B:
					perCounterparty[pair.A] -= amt
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &Overview{UserID: user.ID, UserName: user.Name}
	for counterpartyID, amt := range perCounterparty {
		if amt == 0 {
			continue
		}
		overview.Counterparties = append(overview.Counterparties, CounterpartyBalance{
			UserID: counterpartyID,
			Name:   names[counterpartyID],
			Amount: amt,
		})
		if amt > 0 {
			overview.TotalOwed += amt
		} else {
			overview.TotalOwes += -amt
		}
	}
	overview.NetBalance = overview.TotalOwed - overview.TotalOwes

	// Largest absolute balances first, matching the "top debts / top
	// credits" presentation.
	sort.Slice(overview.Counterparties, func(i, j int) bool {
		ai, aj := abs(overview.Counterparties[i].Amount), abs(overview.Counterparties[j].Amount)
		if ai != aj {
			return ai > aj
		}
		return overview.Counterparties[i].UserID < overview.Counterparties[j].UserID
	})

	return overview, nil
}

// snapshot reads a group's history under its read lock and folds it into
// pairwise balances.
func (s *BalanceService) snapshot(ctx context.Context, groupID string) (*models.Group, map[calculator.Pair]int64, error) {
	lock := s.locks.get(groupID)
	lock.RLock()
	defer lock.RUnlock()

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	pairwise, err := calculator.PairwiseBalances(group, expenses, payments)
	if err != nil {
		return nil, nil, err
	}
	return group, pairwise, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
