// Package settlement answers "how much has been paid against this bill".
//
// Two sources exist. Allocation rows are canonical. Bills recorded before
// allocations existed only have payments tagged with tenant, unit and billing
// month; those are summed as a fallback. A Resolver tries the strategies in
// order and reports which one answered.
package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	billModel "nyumbasmart_backend/internals/features/finance/bills/model"
	"nyumbasmart_backend/internals/features/finance/ledger"
	payModel "nyumbasmart_backend/internals/features/finance/payments/model"
	"nyumbasmart_backend/internals/helpers/apperr"
	"nyumbasmart_backend/internals/helpers/period"
)

type Source string

const (
	SourceAllocations    Source = "allocations"
	SourceLegacyPayments Source = "legacy_payments"
)

// Strategy computes paid-to-date for a bill. ok=false means the strategy has
// no data for the bill and the next one should be tried.
type Strategy interface {
	Source() Source
	PaidToDate(ctx context.Context, db *gorm.DB, bill *billModel.Bill) (paid decimal.Decimal, ok bool, err error)
}

type amountRow struct {
	Amount decimal.Decimal `gorm:"column:amount"`
}

func sumRows(rows []amountRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

// AllocationSum sums payment_allocations for the bill.
type AllocationSum struct{}

func (AllocationSum) Source() Source { return SourceAllocations }

func (AllocationSum) PaidToDate(ctx context.Context, db *gorm.DB, bill *billModel.Bill) (decimal.Decimal, bool, error) {
	var rows []amountRow
	if err := db.WithContext(ctx).
		Model(&payModel.Allocation{}).
		Select("allocation_amount AS amount").
		Where("allocation_bill_id = ?", bill.BillID).
		Find(&rows).Error; err != nil {
		return decimal.Zero, false, err
	}
	if len(rows) == 0 {
		return decimal.Zero, false, nil
	}
	return sumRows(rows), true, nil
}

// LegacyPaymentSum sums payments by (tenant, unit, billing month). It always
// answers, with zero when nothing matches.
type LegacyPaymentSum struct{}

func (LegacyPaymentSum) Source() Source { return SourceLegacyPayments }

func (LegacyPaymentSum) PaidToDate(ctx context.Context, db *gorm.DB, bill *billModel.Bill) (decimal.Decimal, bool, error) {
	var rows []amountRow
	if err := db.WithContext(ctx).
		Model(&payModel.Payment{}).
		Select("payment_amount_paid AS amount").
		Where("payment_tenant_id = ? AND payment_rental_unit_id = ? AND payment_billing_month = ?",
			bill.BillTenantID, bill.BillRentalUnitID, bill.BillBillingMonth).
		Find(&rows).Error; err != nil {
		return decimal.Zero, false, err
	}
	return sumRows(rows), true, nil
}

// =========================================================
// RESOLVER
// =========================================================

type Resolver struct {
	Strategies []Strategy
}

// DefaultResolver prefers allocations and falls back to legacy payments.
func DefaultResolver() Resolver {
	return Resolver{Strategies: []Strategy{AllocationSum{}, LegacyPaymentSum{}}}
}

// PaidToDate is read-only and deterministic for a fixed database state.
func (r Resolver) PaidToDate(ctx context.Context, db *gorm.DB, bill *billModel.Bill) (decimal.Decimal, Source, error) {
	for _, s := range r.Strategies {
		paid, ok, err := s.PaidToDate(ctx, db, bill)
		if err != nil {
			return decimal.Zero, s.Source(), apperr.Internal(err, "compute paid to date")
		}
		if ok {
			return ledger.RoundCurrency(paid), s.Source(), nil
		}
	}
	return decimal.Zero, "", nil
}

type Summary struct {
	BillID     uuid.UUID               `json:"bill_id"`
	TotalDue   decimal.Decimal         `json:"total_due"`
	PaidToDate decimal.Decimal         `json:"paid_to_date"`
	Balance    decimal.Decimal         `json:"balance"`
	Status     ledger.SettlementStatus `json:"status"`
	Source     Source                  `json:"source"`
}

// Summarize derives the bill's current balance and status.
func (r Resolver) Summarize(ctx context.Context, db *gorm.DB, bill *billModel.Bill) (Summary, error) {
	paid, src, err := r.PaidToDate(ctx, db, bill)
	if err != nil {
		return Summary{}, err
	}
	balance, status := ledger.DeriveBalanceAndStatus(bill.BillTotalAmountDue, paid)
	return Summary{
		BillID:     bill.BillID,
		TotalDue:   bill.BillTotalAmountDue,
		PaidToDate: paid,
		Balance:    balance,
		Status:     status,
		Source:     src,
	}, nil
}

// LatestBalance is the carry-forward for target: the balance of the tenant's
// most recent bill for an earlier month, zero when there is none. A negative
// result is a credit.
func (r Resolver) LatestBalance(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, target period.Period) (decimal.Decimal, *billModel.Bill, error) {
	var prev billModel.Bill
	err := db.WithContext(ctx).
		Where("bill_tenant_id = ? AND bill_period_start < ?", tenantID, target.Start()).
		Order("bill_period_start DESC").
		Order("bill_issued_date DESC").
		Take(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil, nil
	}
	if err != nil {
		return decimal.Zero, nil, apperr.Internal(err, "load previous bill")
	}

	sum, err := r.Summarize(ctx, db, &prev)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return sum.Balance, &prev, nil
}
