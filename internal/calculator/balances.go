package calculator

import (
	"fmt"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

// Pair identifies an unordered pair of members, stored with A < B by user ID
// so each pair has exactly one key.
type Pair struct {
	A, B string
}

// PairKey returns the canonical Pair for two user IDs.
func PairKey(x, y string) Pair {
	if x < y {
		return Pair{A: x, B: y}
	}
	return Pair{A: y, B: x}
}

// PairwiseBalances folds a group's expense history and recorded payments
// into one net amount per member pair. A positive value means B owes A,
// negative means A owes B. Accumulation is commutative, so replaying the
// records in any order yields the same balances, and the sum of all members'
// net positions is always exactly zero.
func PairwiseBalances(group *models.Group, expenses []*models.Expense, payments []*models.Payment) (map[Pair]int64, error) {
	balances := make(map[Pair]int64)

	for _, e := range expenses {
		ordered, err := orderedParticipants(group, e.ParticipantIDs)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		shares, err := ComputeShares(e.Amount, e.Split, ordered)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		for userID, share := range shares {
			if userID == e.PayerID {
				continue // the payer's own share cancels against their credit
			}
			addFlow(balances, userID, e.PayerID, share)
		}
	}

	for _, p := range payments {
		// A real payment shrinks what the payer still owes the payee.
		addFlow(balances, p.FromUserID, p.ToUserID, -p.Amount)
	}

	return balances, nil
}

// NetPositions collapses pairwise balances into one net position per member.
// Positive means the member is owed money overall, negative means they owe.
func NetPositions(balances map[Pair]int64) map[string]int64 {
	net := make(map[string]int64)
	for pair, amt := range balances {
		net[pair.A] += amt
		net[pair.B] -= amt
	}
	return net
}

// addFlow records that debtor owes creditor amt more; amt may be negative to
// reverse a flow. Pairs that net out to zero are pruned.
func addFlow(balances map[Pair]int64, debtor, creditor string, amt int64) {
	if debtor == creditor || amt == 0 {
		return
	}
	key := PairKey(debtor, creditor)
	if creditor == key.A {
		balances[key] += amt
	} else {
		balances[key] -= amt
	}
	if balances[key] == 0 {
		delete(balances, key)
	}
}

// orderedParticipants maps a participant set onto the group's canonical
// member order, which fixes where rounding leftovers land. Participants
// outside the group are rejected.
func orderedParticipants(group *models.Group, ids []string) ([]string, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	ordered := make([]string, 0, len(ids))
	for _, m := range group.Members {
		if want[m.UserID] {
			ordered = append(ordered, m.UserID)
		}
	}
	if len(ordered) != len(want) {
		return nil, fmt.Errorf("%w: participant outside group %s", models.ErrInvalidExpense, group.ID)
	}
	return ordered, nil
}
