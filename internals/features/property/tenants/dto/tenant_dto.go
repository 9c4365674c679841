// file: internals/features/property/tenants/dto/tenant_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/features/property/tenants/service"
)

/* ===============================
   Requests
=================================*/

type AssignTenantRequest struct {
	TenantFullName   string     `json:"tenant_full_name" validate:"required,max=150"`
	TenantPhone      string     `json:"tenant_phone" validate:"required,max=30"`
	TenantEmail      *string    `json:"tenant_email,omitempty" validate:"omitempty,email,max=150"`
	TenantIDNumber   string     `json:"tenant_id_number" validate:"omitempty,max=50"`
	TenantMoveInDate *time.Time `json:"tenant_move_in_date,omitempty"`
}

func (r AssignTenantRequest) ToInput() service.AssignTenantInput {
	return service.AssignTenantInput{
		FullName:   r.TenantFullName,
		Phone:      r.TenantPhone,
		Email:      r.TenantEmail,
		IDNumber:   r.TenantIDNumber,
		MoveInDate: r.TenantMoveInDate,
	}
}

type VacateTenantRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=255"`
	Notes  *string `json:"notes,omitempty"`
}

type TransferTenantRequest struct {
	NewRentalUnitID uuid.UUID  `json:"new_rental_unit_id" validate:"required"`
	MoveInDate      *time.Time `json:"move_in_date,omitempty"`
	Reason          *string    `json:"reason,omitempty" validate:"omitempty,max=255"`
}

func (r TransferTenantRequest) ToInput() service.TransferTenantInput {
	return service.TransferTenantInput{
		NewUnitID:  r.NewRentalUnitID,
		MoveInDate: r.MoveInDate,
		Reason:     r.Reason,
	}
}

type VacateNoticeRequest struct {
	NoticeDate         *time.Time `json:"notice_date,omitempty"`
	ExpectedVacateDate time.Time  `json:"expected_vacate_date" validate:"required"`
	InspectionDate     *time.Time `json:"inspection_date,omitempty"`
	Reason             *string    `json:"reason,omitempty" validate:"omitempty,max=300"`
}

func (r VacateNoticeRequest) ToInput() service.VacateNoticeInput {
	return service.VacateNoticeInput{
		NoticeDate:         r.NoticeDate,
		ExpectedVacateDate: r.ExpectedVacateDate,
		InspectionDate:     r.InspectionDate,
		Reason:             r.Reason,
	}
}

/* ===============================
   Responses
=================================*/

type AssignTenantResponse struct {
	Tenant      tenantModel.Tenant   `json:"tenant"`
	RentalUnit  unitModel.RentalUnit `json:"rental_unit"`
	Reactivated bool                 `json:"reactivated"`
}

func FromAssignResult(r *service.AssignResult) AssignTenantResponse {
	return AssignTenantResponse{Tenant: r.Tenant, RentalUnit: r.Unit, Reactivated: r.Reactivated}
}

type VacateTenantResponse struct {
	Tenant       tenantModel.Tenant        `json:"tenant"`
	RentalUnit   unitModel.RentalUnit      `json:"rental_unit"`
	VacateLog    tenantModel.VacateLog     `json:"vacate_log"`
	VacateNotice *tenantModel.VacateNotice `json:"vacate_notice,omitempty"`
}

func FromVacateResult(r *service.VacateResult) VacateTenantResponse {
	return VacateTenantResponse{Tenant: r.Tenant, RentalUnit: r.Unit, VacateLog: r.Log, VacateNotice: r.Notice}
}

type TransferTenantResponse struct {
	Tenant        tenantModel.Tenant      `json:"tenant"`
	OldRentalUnit *unitModel.RentalUnit   `json:"old_rental_unit,omitempty"`
	NewRentalUnit unitModel.RentalUnit    `json:"new_rental_unit"`
	TransferLog   tenantModel.TransferLog `json:"transfer_log"`
}

func FromTransferResult(r *service.TransferResult) TransferTenantResponse {
	return TransferTenantResponse{
		Tenant:        r.Tenant,
		OldRentalUnit: r.OldUnit,
		NewRentalUnit: r.NewUnit,
		TransferLog:   r.Log,
	}
}
