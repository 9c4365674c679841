// file: internals/features/finance/bills/controller/bill_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/finance/bills/dto"
	"nyumbasmart_backend/internals/features/finance/bills/service"
	helper "nyumbasmart_backend/internals/helpers"
)

type BillHandler struct {
	Svc *service.BillService
}

func NewBillHandler(svc *service.BillService) *BillHandler {
	return &BillHandler{Svc: svc}
}

// POST /api/a/bills/generate-or-update
func (h *BillHandler) GenerateOrUpdateBills(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.GenerateBillsRequest
	if len(c.Body()) > 0 {
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
	}

	res, err := h.Svc.GenerateOrUpdateBills(c.UserContext(), caller, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "bills generated", res)
}

// GET /api/a/bills
func (h *BillHandler) ListBills(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var q dto.BillListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	f, err := q.ToFilter()
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Svc.ListBills(c.UserContext(), caller, f, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p, len(rows)))
}

// GET /api/a/bills/:bill_id/summary
func (h *BillHandler) GetBillSummary(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	billID, err := helper.ParseUUIDParam(c, "bill_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	sum, err := h.Svc.GetBillSummary(c.UserContext(), caller, billID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", sum)
}

// POST /api/a/bills/:bill_id/remind
func (h *BillHandler) SendBillReminder(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	billID, err := helper.ParseUUIDParam(c, "bill_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := h.Svc.SendBillReminder(c.UserContext(), caller, billID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "reminder queued",
		"data":    res,
	})
}

// DELETE /api/a/bills/:bill_id
func (h *BillHandler) VoidBill(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	billID, err := helper.ParseUUIDParam(c, "bill_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := h.Svc.VoidBill(c.UserContext(), caller, billID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "bill voided", res)
}
