// Package models defines the core domain models for the shared-expense
// tracker.
//
// # Models
//
//   - User: a person with a cross-group identity, resolved by display name
//   - Group: an ordered set of members that owns a history of expenses
//   - Expense: an immutable record of one member paying on behalf of several
//   - SplitRule: how an expense amount is divided among its participants
//   - Payment: a recorded settle-up payment between two members
//
// # Design Principles
//
//  1. **Integer money**: all amounts are int64 minor currency units (paise).
//     Split shares must sum exactly to the original amount, which rules out
//     floating point.
//  2. **Immutable history**: expenses are append-only. A correction is a new
//     expense plus a reversing one, never a mutation.
//  3. **Derived balances**: pairwise balances, net positions, and settlement
//     suggestions are computed from the recorded history on demand and are
//     never stored.
//  4. **Avoid circular references**: models reference each other by ID
//     strings instead of pointers.
package models
