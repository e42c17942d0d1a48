// Package calculator contains the pure ledger math: net balances, category
// totals, and share derivation. Functions here take minimal input structs so
// the package stays independent of storage and transport concerns.
package calculator

import "github.com/shopspring/decimal"

// ExpenseForBalance carries the minimal expense information needed for
// balance computation.
type ExpenseForBalance struct {
	Amount  decimal.Decimal
	PayerID string
	Shares  []ParticipantShare
}

// ParticipantShare is one participant's owed share on an expense.
type ParticipantShare struct {
	ParticipantID string
	Name          string
	Share         decimal.Decimal
}

// MemberBalance is the accumulated position of one participant.
//
// NetBalance is TotalOwed − TotalPaid: positive means the participant is a
// net debtor (owes money into the pool), negative a net creditor.
type MemberBalance struct {
	ParticipantID string
	Name          string
	NetBalance    decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalOwed     decimal.Decimal
}

// NetBalances accumulates per-participant net positions across the given
// expenses. Callers apply any settled-expense filtering before calling;
// the engine computes over exactly what it is given.
//
// For each expense, each listed participant accrues share − amountPaid,
// where amountPaid is the full expense amount if they are the payer and zero
// otherwise. A payer not listed among the participants accrues nothing from
// that expense: expenses are expected to list their payer as a participant
// to be balance-complete, and the engine never invents rows.
//
// The returned slice has no ordering guarantee.
func NetBalances(expenses []ExpenseForBalance) []MemberBalance {
	balances := make(map[string]*MemberBalance)

	for _, exp := range expenses {
		// No payer means no one fronted money; skip.
		if exp.PayerID == "" {
			continue
		}

		for _, share := range exp.Shares {
			bal, ok := balances[share.ParticipantID]
			if !ok {
				bal = &MemberBalance{
					ParticipantID: share.ParticipantID,
					Name:          share.Name,
				}
				balances[share.ParticipantID] = bal
			}

			bal.TotalOwed = bal.TotalOwed.Add(share.Share)
			if share.ParticipantID == exp.PayerID {
				bal.TotalPaid = bal.TotalPaid.Add(exp.Amount)
			}
		}
	}

	result := make([]MemberBalance, 0, len(balances))
	for _, bal := range balances {
		bal.NetBalance = bal.TotalOwed.Sub(bal.TotalPaid)
		result = append(result, *bal)
	}
	return result
}

// TotalBalance sums the net balances. For a ledger where every expense's
// shares sum exactly to its amount and every payer is a participant, the
// total is zero; a non-zero total is diagnostic, not an error.
func TotalBalance(balances []MemberBalance) decimal.Decimal {
	total := decimal.Zero
	for _, bal := range balances {
		total = total.Add(bal.NetBalance)
	}
	return total
}

// GroupExposure is half the sum of absolute net balances: the total amount
// of outstanding debt within the group. Halving avoids double-counting,
// since in a conserved ledger every owed unit is matched by a credited one.
func GroupExposure(balances []MemberBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, bal := range balances {
		sum = sum.Add(bal.NetBalance.Abs())
	}
	return sum.Div(decimal.NewFromInt(2))
}
