// Package calculator implements the pure computations of the ledger core:
// exact integer share splitting, pairwise balance folding, and greedy
// settlement reduction. Nothing in this package touches storage or mutates
// its inputs.
package calculator

import (
	"fmt"
	"sort"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

// ComputeShares computes each participant's exact share of amount in minor
// currency units. Participants must be given in the group's canonical member
// order; rounding leftovers are distributed deterministically so that the
// returned shares always sum to amount exactly.
func ComputeShares(amount int64, rule models.SplitRule, participants []string) (map[string]int64, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", models.ErrInvalidSplit, amount)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: no participants", models.ErrInvalidSplit)
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate participant %q", models.ErrInvalidSplit, p)
		}
		seen[p] = true
	}

	switch rule.Type {
	case models.SplitEqual:
		return equalShares(amount, participants), nil
	case models.SplitPercentage:
		return percentageShares(amount, rule.Percents, participants)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", models.ErrInvalidSplit, rule.Type)
	}
}

// equalShares gives everyone amount/n, handing the leftover minor units one
// each to the first participants in order. 100 split three ways is
// {34, 33, 33}, never {33, 33, 33}.
func equalShares(amount int64, participants []string) map[string]int64 {
	n := int64(len(participants))
	base := amount / n
	rem := amount - base*n

	shares := make(map[string]int64, n)
	for i, p := range participants {
		share := base
		if int64(i) < rem {
			share++
		}
		shares[p] = share
	}
	return shares
}

// percentageShares computes floor(amount * weight / 100) per participant,
// then distributes the rounding remainder one minor unit at a time by
// descending fractional remainder, ties broken by participant order.
func percentageShares(amount int64, percents map[string]int64, participants []string) (map[string]int64, error) {
	if len(percents) != len(participants) {
		return nil, fmt.Errorf("%w: weights cover %d members, expense has %d participants",
			models.ErrInvalidSplit, len(percents), len(participants))
	}

	var total int64
	for _, p := range participants {
		weight, ok := percents[p]
		if !ok {
			return nil, fmt.Errorf("%w: no percentage weight for participant %q", models.ErrInvalidSplit, p)
		}
		if weight < 0 {
			return nil, fmt.Errorf("%w: negative weight %d for participant %q", models.ErrInvalidSplit, weight, p)
		}
		total += weight
	}
	if total != 100 {
		return nil, fmt.Errorf("%w: weights sum to %d, want 100", models.ErrInvalidSplit, total)
	}

	type leftover struct {
		id   string
		frac int64 // hundredths of a minor unit left after the floor
		pos  int   // position in the canonical participant order
	}

	shares := make(map[string]int64, len(participants))
	leftovers := make([]leftover, 0, len(participants))
	assigned := int64(0)
	for i, p := range participants {
		raw := amount * percents[p]
		share := raw / 100
		shares[p] = share
		assigned += share
		leftovers = append(leftovers, leftover{id: p, frac: raw % 100, pos: i})
	}

	sort.Slice(leftovers, func(i, j int) bool {
		if leftovers[i].frac != leftovers[j].frac {
			return leftovers[i].frac > leftovers[j].frac
		}
		return leftovers[i].pos < leftovers[j].pos
	})
	for i := 0; assigned < amount; i++ {
		shares[leftovers[i].id]++
		assigned++
	}

	return shares, nil
}
