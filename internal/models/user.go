package models

// User represents a person with an identity that spans groups. Users are
// resolved by display name when a group is created, so the same person keeps
// one ID across every group they belong to and overview queries can
// aggregate across groups.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name. Unique: it is how group creation resolves
	// member names to existing users.
	Name string

	// CreatedAt is the Unix timestamp when the user was first seen.
	CreatedAt int64
}
