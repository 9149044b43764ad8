package models

import "errors"

// Error kinds surfaced by the ledger core. Every failure here is a
// caller-correctable input error; there is no fatal class. Callers match
// with errors.Is, producers add detail with fmt.Errorf("%w: ...").
var (
	// ErrInvalidGroup marks malformed group input: fewer than two members,
	// duplicate or empty member names.
	ErrInvalidGroup = errors.New("invalid group")

	// ErrInvalidExpense marks a rejected expense: non-positive amount, empty
	// description, payer or participant outside the group. Split failures are
	// wrapped so both ErrInvalidExpense and ErrInvalidSplit match.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrInvalidSplit marks a bad split rule: percentages not summing to 100,
	// a negative weight, or a weight set that doesn't cover the participants.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrInvalidPayment marks a rejected settle-up payment.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrNotFound marks a reference to a nonexistent group, user, or expense.
	ErrNotFound = errors.New("not found")
)
