// file: internals/features/finance/bills/model/bill_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/features/finance/ledger"
)

// =========================================================
// MODEL: one obligation per tenant per billing month
// =========================================================

type Bill struct {
	BillID uuid.UUID `gorm:"column:bill_id;type:uuid;primaryKey" json:"bill_id"`

	BillTenantID     uuid.UUID `gorm:"column:bill_tenant_id;type:uuid;not null;uniqueIndex:uq_bill_tenant_month,priority:1;index:ix_bill_tenant_period,priority:1" json:"bill_tenant_id"`
	BillRentalUnitID uuid.UUID `gorm:"column:bill_rental_unit_id;type:uuid;not null;index" json:"bill_rental_unit_id"`
	// cache of the chain at bill time
	BillLandlordID uuid.UUID `gorm:"column:bill_landlord_id;type:uuid;not null;index" json:"bill_landlord_id"`

	// label, e.g. "October 2026"
	BillBillingMonth string    `gorm:"column:bill_billing_month;type:varchar(20);not null;uniqueIndex:uq_bill_tenant_month,priority:2" json:"bill_billing_month"`
	BillPeriodStart  time.Time `gorm:"column:bill_period_start;not null;index:ix_bill_tenant_period,priority:2" json:"bill_period_start"`

	// Amounts
	BillRent                  decimal.Decimal `gorm:"column:bill_rent;type:numeric(12,2);not null" json:"bill_rent"`
	BillWater                 decimal.Decimal `gorm:"column:bill_water;type:numeric(12,2);not null;default:0" json:"bill_water"`
	BillElectricity           decimal.Decimal `gorm:"column:bill_electricity;type:numeric(12,2);not null;default:0" json:"bill_electricity"`
	BillGarbage               decimal.Decimal `gorm:"column:bill_garbage;type:numeric(12,2);not null;default:0" json:"bill_garbage"`
	BillInternet              decimal.Decimal `gorm:"column:bill_internet;type:numeric(12,2);not null;default:0" json:"bill_internet"`
	BillCarriedForwardBalance decimal.Decimal `gorm:"column:bill_carried_forward_balance;type:numeric(12,2);not null;default:0" json:"bill_carried_forward_balance"`
	BillTotalAmountDue        decimal.Decimal `gorm:"column:bill_total_amount_due;type:numeric(12,2);not null" json:"bill_total_amount_due"`

	BillDueDate    time.Time               `gorm:"column:bill_due_date;not null" json:"bill_due_date"`
	BillIssuedDate time.Time               `gorm:"column:bill_issued_date;not null" json:"bill_issued_date"`
	BillStatus     ledger.SettlementStatus `gorm:"column:bill_status;type:varchar(20);not null;default:'Unpaid';index" json:"bill_status"`

	BillCreatedAt time.Time `gorm:"column:bill_created_at;not null" json:"bill_created_at"`
	BillUpdatedAt time.Time `gorm:"column:bill_updated_at;not null" json:"bill_updated_at"`
}

func (Bill) TableName() string {
	return "bills"
}

func (m *Bill) BeforeCreate(tx *gorm.DB) error {
	if m.BillID == uuid.Nil {
		m.BillID = uuid.New()
	}
	now := time.Now()
	if m.BillIssuedDate.IsZero() {
		m.BillIssuedDate = now
	}
	if m.BillCreatedAt.IsZero() {
		m.BillCreatedAt = now
	}
	if m.BillStatus == "" {
		m.BillStatus = ledger.StatusUnpaid
	}
	m.BillUpdatedAt = now
	return nil
}

func (m *Bill) BeforeUpdate(tx *gorm.DB) error {
	m.BillUpdatedAt = time.Now()
	return nil
}

// Utilities sums the four utility charges.
func (m *Bill) Utilities() decimal.Decimal {
	return ledger.Sum(m.BillWater, m.BillElectricity, m.BillGarbage, m.BillInternet)
}

// Recompute sets TotalAmountDue = max(0, rent + carry-forward + utilities).
func (m *Bill) Recompute() {
	m.BillTotalAmountDue = ledger.RoundCurrency(
		ledger.FloorAtZero(ledger.Sum(m.BillRent, m.BillCarriedForwardBalance, m.Utilities())),
	)
}
