// file: internals/features/finance/bills/dto/bill_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nyumbasmart_backend/internals/features/finance/bills/service"
	"nyumbasmart_backend/internals/features/finance/ledger"
	"nyumbasmart_backend/internals/helpers/apperr"
)

// GenerateBillsRequest: an omitted utility keeps its stored value on an
// existing bill and is zero on a new one.
type GenerateBillsRequest struct {
	BillingMonth string     `json:"billing_month" validate:"omitempty,max=20"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`

	Water       *decimal.Decimal `json:"water,omitempty"`
	Electricity *decimal.Decimal `json:"electricity,omitempty"`
	Garbage     *decimal.Decimal `json:"garbage,omitempty"`
	Internet    *decimal.Decimal `json:"internet,omitempty"`
}

func (r GenerateBillsRequest) ToInput() service.GenerateInput {
	return service.GenerateInput{
		BillingMonth: r.BillingMonth,
		TenantID:     r.TenantID,
		Utilities: service.UtilityOverrides{
			Water:       r.Water,
			Electricity: r.Electricity,
			Garbage:     r.Garbage,
			Internet:    r.Internet,
		},
	}
}

// BillListQuery binds GET /bills query params.
type BillListQuery struct {
	BillingMonth string `query:"billing_month"`
	Status       string `query:"status"`
	TenantID     string `query:"tenant_id"`
}

func (q BillListQuery) ToFilter() (service.BillFilter, error) {
	f := service.BillFilter{
		BillingMonth: strings.TrimSpace(q.BillingMonth),
		Status:       ledger.SettlementStatus(strings.TrimSpace(q.Status)),
	}
	if s := strings.TrimSpace(q.TenantID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, apperr.InvalidArgument("tenant_id is not a valid id")
		}
		f.TenantID = &id
	}
	return f, nil
}
