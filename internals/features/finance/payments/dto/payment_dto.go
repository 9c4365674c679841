// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	payModel "nyumbasmart_backend/internals/features/finance/payments/model"
	"nyumbasmart_backend/internals/features/finance/payments/service"
	"nyumbasmart_backend/internals/helpers/apperr"
)

type RecordPaymentRequest struct {
	TenantID     uuid.UUID        `json:"tenant_id" validate:"required"`
	RentalUnitID uuid.UUID        `json:"rental_unit_id" validate:"required"`
	BillingMonth string           `json:"billing_month" validate:"required,max=20"`
	AmountPaid   *decimal.Decimal `json:"amount_paid" validate:"required"`

	// defaults to cash
	PaymentChannel string         `json:"payment_channel" validate:"omitempty,oneof=mobile_money bank_transfer cash card other"`
	TransactionRef *string        `json:"transaction_ref,omitempty" validate:"omitempty,max=120"`
	PaymentDate    *time.Time     `json:"payment_date,omitempty"`
	Meta           map[string]any `json:"meta,omitempty"`
}

func (r RecordPaymentRequest) ToInput() service.RecordPaymentInput {
	in := service.RecordPaymentInput{
		TenantID:       r.TenantID,
		RentalUnitID:   r.RentalUnitID,
		BillingMonth:   r.BillingMonth,
		Channel:        payModel.PaymentChannel(r.PaymentChannel),
		TransactionRef: r.TransactionRef,
		PaymentDate:    r.PaymentDate,
		Meta:           r.Meta,
	}
	if r.AmountPaid != nil {
		in.AmountPaid = *r.AmountPaid
	}
	return in
}

type PaymentListQuery struct {
	TenantID     string `query:"tenant_id"`
	BillingMonth string `query:"billing_month"`
}

func (q PaymentListQuery) ToFilter() (service.PaymentFilter, error) {
	f := service.PaymentFilter{BillingMonth: strings.TrimSpace(q.BillingMonth)}
	if s := strings.TrimSpace(q.TenantID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, apperr.InvalidArgument("tenant_id is not a valid id")
		}
		f.TenantID = &id
	}
	return f, nil
}
