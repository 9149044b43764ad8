package models

// Member is a user's membership in one group. The order of members within a
// group is significant: it is both the display order and the canonical order
// used when distributing rounding leftovers.
type Member struct {
	// UserID references the user this membership belongs to.
	UserID string

	// Name is the user's display name, denormalized for convenience.
	Name string
}

// Group represents a set of people who share expenses. A group exclusively
// owns its expenses, and its member set may only grow; removal would
// invalidate historical balances.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Weekend Trip").
	Name string

	// Members is the ordered member list. Insertion order is preserved and
	// user IDs are unique within the group.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the member user IDs in canonical group order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// MemberName returns the display name for a member user ID, or the ID itself
// if the user is not in the group.
func (g *Group) MemberName(userID string) string {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m.Name
		}
	}
	return userID
}
