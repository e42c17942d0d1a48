package models

// Group is a circle of people who share expenses. Its membership for balance
// purposes is the owner plus MemberIDs resolved through the friend directory.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// OwnerUserID scopes the group to the account that created it.
	OwnerUserID string

	Name        string
	Description string

	// Color is a display hint for clients (e.g. "#4caf50").
	Color string

	// Currency is the ISO 4217 currency code used by the group's expenses.
	Currency string

	// MemberIDs is the ordered list of friend IDs belonging to the group.
	// The owner is an implicit member and is not listed here.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupPatch is a partial update for a group. Nil fields are left unchanged.
type GroupPatch struct {
	Name        *string
	Description *string
	Color       *string
	Currency    *string
	MemberIDs   *[]string
}

// Member is a resolved participant candidate for expense entry and balance
// display within a group.
type Member struct {
	// ID is the owner's user ID or a friend ID.
	ID string

	// Name is the current display name from the user account or friend
	// directory. Unlike Participant.Name, this is live, not a snapshot.
	Name string

	// IsOwner is true for the group owner's own entry.
	IsOwner bool
}
