package models

// SplitType identifies how an expense amount is divided among participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly; leftover minor units go to the
	// first participants in group order.
	SplitEqual SplitType = "EQUAL"

	// SplitPercentage divides the amount by per-participant integer
	// percentage weights that must sum to exactly 100.
	SplitPercentage SplitType = "PERCENTAGE"
)

// SplitRule is the tagged split configuration carried by an expense.
type SplitRule struct {
	// Type selects the split variant.
	Type SplitType

	// Percents maps participant user ID to an integer percentage weight.
	// Set only for SplitPercentage; weights must cover exactly the
	// participant set and sum to 100.
	Percents map[string]int64
}

// Expense is an immutable record of one member paying on behalf of several.
// Amounts are minor currency units (paise); the derived shares always sum
// exactly to Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the owning group. An expense cannot outlive or be shared
	// across groups.
	GroupID string

	// Description is a non-empty human-readable label (e.g., "Dinner").
	Description string

	// Amount is the full expense amount in minor currency units, always
	// positive.
	Amount int64

	// PayerID is the member who paid. Must belong to the group.
	PayerID string

	// Split is how the amount divides among the participants.
	Split SplitRule

	// ParticipantIDs is the non-empty subset of group members sharing the
	// expense, stored in canonical group order.
	ParticipantIDs []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Payment records an actual settle-up payment between two group members. It
// offsets pairwise balances, unlike the settlement *suggestions* produced by
// the reducer, which are ephemeral and never persisted.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group whose balances this payment offsets.
	GroupID string

	// FromUserID is the member who paid (debtor settling up).
	FromUserID string

	// ToUserID is the member who received the payment.
	ToUserID string

	// Amount is the payment amount in minor currency units, always positive.
	Amount int64

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
