// Package ledger derives a bill's balance and settlement status from its total
// due and the amount paid so far. Everything here is pure.
package ledger

import "github.com/shopspring/decimal"

type SettlementStatus string

const (
	StatusUnpaid        SettlementStatus = "Unpaid"
	StatusPartiallyPaid SettlementStatus = "Partially Paid"
	StatusPaid          SettlementStatus = "Paid"
	StatusOverpaid      SettlementStatus = "Overpaid"
)

func (s SettlementStatus) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPartiallyPaid, StatusPaid, StatusOverpaid:
		return true
	}
	return false
}

// RoundCurrency rounds to 2dp, ties away from zero (-0.005 becomes -0.01).
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FloorAtZero clamps negative amounts to zero.
func FloorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// DeriveBalanceAndStatus returns totalDue - paidToDate, rounded, plus the
// status it implies. A negative balance is a credit owed to the tenant.
func DeriveBalanceAndStatus(totalDue, paidToDate decimal.Decimal) (decimal.Decimal, SettlementStatus) {
	balance := RoundCurrency(totalDue.Sub(paidToDate))
	paid := RoundCurrency(paidToDate)

	switch {
	case balance.IsNegative():
		return balance, StatusOverpaid
	case paid.IsZero() || paid.IsNegative():
		return balance, StatusUnpaid
	case balance.IsZero():
		return balance, StatusPaid
	default:
		return balance, StatusPartiallyPaid
	}
}

// Sum adds amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
