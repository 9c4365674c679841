// file: internals/features/property/tenants/controller/tenancy_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/property/tenants/dto"
	"nyumbasmart_backend/internals/features/property/tenants/service"
	helper "nyumbasmart_backend/internals/helpers"
)

type TenancyHandler struct {
	Svc *service.TenancyService
}

func NewTenancyHandler(svc *service.TenancyService) *TenancyHandler {
	return &TenancyHandler{Svc: svc}
}

// POST /api/a/units/:unit_id/tenants
func (h *TenancyHandler) AssignTenant(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	unitID, err := helper.ParseUUIDParam(c, "unit_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.AssignTenantRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := h.Svc.AssignTenant(c.UserContext(), caller, unitID, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if res.Reactivated {
		return helper.JsonOK(c, "tenant reactivated", dto.FromAssignResult(res))
	}
	return helper.JsonCreated(c, "tenant assigned", dto.FromAssignResult(res))
}

// POST /api/a/tenants/:tenant_id/vacate
func (h *TenancyHandler) VacateTenant(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	tenantID, err := helper.ParseUUIDParam(c, "tenant_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	// body is optional
	var req dto.VacateTenantRequest
	if len(c.Body()) > 0 {
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
	}

	res, err := h.Svc.VacateTenant(c.UserContext(), caller, tenantID, req.Reason, req.Notes)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "tenant vacated", dto.FromVacateResult(res))
}

// POST /api/a/tenants/:tenant_id/transfer
func (h *TenancyHandler) TransferTenant(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	tenantID, err := helper.ParseUUIDParam(c, "tenant_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.TransferTenantRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := h.Svc.TransferTenant(c.UserContext(), caller, tenantID, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "tenant transferred", dto.FromTransferResult(res))
}

// POST /api/a/tenants/:tenant_id/vacate-notices
func (h *TenancyHandler) GiveVacateNotice(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	tenantID, err := helper.ParseUUIDParam(c, "tenant_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.VacateNoticeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	notice, err := h.Svc.GiveVacateNotice(c.UserContext(), caller, tenantID, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "vacate notice recorded", notice)
}

// GET /api/a/tenants/:tenant_id/vacate-notices
func (h *TenancyHandler) ListVacateNotices(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	tenantID, err := helper.ParseUUIDParam(c, "tenant_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	rows, err := h.Svc.ListVacateNotices(c.UserContext(), caller, tenantID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "vacate notices", rows)
}

// POST /api/a/vacate-notices/:notice_id/cancel
func (h *TenancyHandler) CancelVacateNotice(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	noticeID, err := helper.ParseUUIDParam(c, "notice_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	notice, err := h.Svc.CancelVacateNotice(c.UserContext(), caller, noticeID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "vacate notice cancelled", notice)
}
