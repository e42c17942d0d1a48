package models

// Friend is a directory entry for someone the user splits expenses with.
// Friends carry no owed-amount semantics of their own; they exist to resolve
// display names when building participant lists.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	ID string

	// OwnerUserID scopes the friend to the account that added them.
	OwnerUserID string

	// Name is the display name.
	Name string

	// Email and Phone are optional contact fields.
	Email string
	Phone string

	// CreatedAt is the Unix timestamp when the friend was added.
	CreatedAt int64
}
