package models

import "github.com/shopspring/decimal"

// Balance is one participant's net position, derived from the expense set
// and never persisted.
//
// Sign convention: positive = this participant owes money into the pool
// (net debtor); negative = the pool owes them (net creditor).
type Balance struct {
	ParticipantID string
	Name          string
	Amount        decimal.Decimal
}

// GroupBalance is the derived balance view for one group.
type GroupBalance struct {
	GroupID   string
	GroupName string
	Balances  []Balance

	// TotalAmount is the group's total exposure: half the sum of absolute
	// member balances. Halving avoids double-counting, since in a balanced
	// ledger total debt equals total credit.
	TotalAmount decimal.Decimal
}
