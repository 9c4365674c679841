// file: internals/features/finance/payments/model/allocation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/*
  payment_allocations = the part of a payment applied to one bill.
  Sum of a payment's allocations never exceeds its amount.
*/

type Allocation struct {
	AllocationID uuid.UUID `json:"allocation_id" gorm:"column:allocation_id;type:uuid;primaryKey"`

	AllocationPaymentID uuid.UUID `json:"allocation_payment_id" gorm:"column:allocation_payment_id;type:uuid;not null;uniqueIndex:uq_allocation_payment_bill,priority:1"`
	AllocationBillID    uuid.UUID `json:"allocation_bill_id"    gorm:"column:allocation_bill_id;type:uuid;not null;uniqueIndex:uq_allocation_payment_bill,priority:2;index"`

	AllocationAmount decimal.Decimal `json:"allocation_amount" gorm:"column:allocation_amount;type:numeric(12,2);not null"`

	AllocationCreatedAt time.Time `json:"allocation_created_at" gorm:"column:allocation_created_at;not null"`
}

func (Allocation) TableName() string { return "payment_allocations" }

func (m *Allocation) BeforeCreate(tx *gorm.DB) error {
	if m.AllocationID == uuid.Nil {
		m.AllocationID = uuid.New()
	}
	if m.AllocationCreatedAt.IsZero() {
		m.AllocationCreatedAt = time.Now()
	}
	return nil
}
