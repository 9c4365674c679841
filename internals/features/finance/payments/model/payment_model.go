// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ================================
   ENUM
================================ */

type PaymentChannel string

const (
	PaymentChannelMobileMoney  PaymentChannel = "mobile_money"
	PaymentChannelBankTransfer PaymentChannel = "bank_transfer"
	PaymentChannelCash         PaymentChannel = "cash"
	PaymentChannelCard         PaymentChannel = "card"
	PaymentChannelOther        PaymentChannel = "other"
)

func (c PaymentChannel) Valid() bool {
	switch c {
	case PaymentChannelMobileMoney, PaymentChannelBankTransfer, PaymentChannelCash, PaymentChannelCard, PaymentChannelOther:
		return true
	}
	return false
}

/* ================================
   MODEL: payments
================================ */

type Payment struct {
	PaymentID uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;primaryKey"`

	PaymentTenantID     uuid.UUID `json:"payment_tenant_id"      gorm:"column:payment_tenant_id;type:uuid;not null;index:ix_payment_tenant_unit_month,priority:1"`
	PaymentRentalUnitID uuid.UUID `json:"payment_rental_unit_id" gorm:"column:payment_rental_unit_id;type:uuid;not null;index:ix_payment_tenant_unit_month,priority:2"`
	PaymentLandlordID   uuid.UUID `json:"payment_landlord_id"    gorm:"column:payment_landlord_id;type:uuid;not null;index"`
	PaymentBillingMonth string    `json:"payment_billing_month"  gorm:"column:payment_billing_month;type:varchar(20);not null;index:ix_payment_tenant_unit_month,priority:3"`

	PaymentAmountPaid decimal.Decimal `json:"payment_amount_paid" gorm:"column:payment_amount_paid;type:numeric(12,2);not null"`
	// snapshots at recording time
	PaymentBilledAmount decimal.Decimal `json:"payment_billed_amount" gorm:"column:payment_billed_amount;type:numeric(12,2);not null"`
	PaymentBalanceAfter decimal.Decimal `json:"payment_balance_after" gorm:"column:payment_balance_after;type:numeric(12,2);not null"`

	PaymentChannel PaymentChannel `json:"payment_channel" gorm:"column:payment_channel;type:varchar(20);not null;default:'cash'"`
	// external reference (M-Pesa code, bank ref); unique when present
	PaymentTransactionRef *string `json:"payment_transaction_ref" gorm:"column:payment_transaction_ref;type:varchar(120);uniqueIndex:uq_payment_transaction_ref"`

	PaymentDate       time.Time         `json:"payment_date"        gorm:"column:payment_date;not null"`
	PaymentRecordedBy uuid.UUID         `json:"payment_recorded_by" gorm:"column:payment_recorded_by;type:uuid;not null"`
	PaymentMeta       datatypes.JSONMap `json:"payment_meta"        gorm:"column:payment_meta"`

	PaymentCreatedAt time.Time `json:"payment_created_at" gorm:"column:payment_created_at;not null"`
	PaymentUpdatedAt time.Time `json:"payment_updated_at" gorm:"column:payment_updated_at;not null"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	now := time.Now()
	if m.PaymentDate.IsZero() {
		m.PaymentDate = now
	}
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	m.PaymentUpdatedAt = now
	return nil
}

func (m *Payment) BeforeUpdate(tx *gorm.DB) error {
	m.PaymentUpdatedAt = time.Now()
	return nil
}
