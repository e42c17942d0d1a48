package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category classifies an expense for spending summaries.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryHealthcare    Category = "healthcare"
	CategoryTravel        Category = "travel"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryTravel,
	CategoryEducation,
	CategoryOther,
}

// ParseCategory validates and returns the category for the given string.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// SplitType records how an expense's participant shares were derived.
// It is descriptive metadata only: balance computation always uses the
// stored per-participant shares.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitCustom     SplitType = "custom"
	SplitPercentage SplitType = "percentage"
)

// ParseSplitType validates and returns the split type for the given string.
func ParseSplitType(s string) (SplitType, error) {
	switch SplitType(s) {
	case SplitEqual, SplitCustom, SplitPercentage:
		return SplitType(s), nil
	}
	return "", fmt.Errorf("unknown split type: %q", s)
}

// Participant is one person's stake in an expense.
type Participant struct {
	// ID identifies the participant: either the owner's user ID or a
	// friend ID. Historical expenses keep their IDs even after the friend
	// is removed from a group or deleted entirely.
	ID string

	// Name is the display name snapshotted at the time the expense was
	// written. It is never re-resolved against the friend directory.
	Name string

	// Share is the amount this participant owes for the expense.
	Share decimal.Decimal

	// Settled marks this participant's share as resolved.
	Settled bool

	// SettledAt is the Unix timestamp when the share was settled, if ever.
	SettledAt *int64
}

// Expense is a single recorded expense. The participant shares are the
// authoritative owed amounts; their sum is validated against Amount when the
// expense is constructed, not here.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// OwnerUserID scopes the expense to the account that recorded it.
	OwnerUserID string

	Title       string
	Description string

	// Amount is the total the payer fronted, always non-negative.
	Amount decimal.Decimal

	// Currency is the ISO 4217 currency code (e.g. "USD").
	Currency string

	Category Category

	// PayerID is the participant who fronted the money.
	PayerID string

	// GroupID links the expense to a group; empty means a personal expense.
	GroupID string

	// Participants is the ordered list of people splitting the expense.
	Participants []Participant

	SplitType SplitType

	// Settled marks the whole expense as resolved. Set by bulk group
	// settlement; settled expenses are excluded from balance computation.
	Settled bool

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// ExpensePatch is a partial update for an expense. Nil fields are left
// unchanged; the store applies a shallow merge over the existing record.
type ExpensePatch struct {
	Title        *string
	Description  *string
	Amount       *decimal.Decimal
	Currency     *string
	Category     *Category
	PayerID      *string
	GroupID      *string
	Participants *[]Participant
	SplitType    *SplitType
	Settled      *bool
}
