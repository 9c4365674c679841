// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/finance/payments/dto"
	"nyumbasmart_backend/internals/features/finance/payments/service"
	helper "nyumbasmart_backend/internals/helpers"
)

type PaymentHandler struct {
	Svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// POST /api/a/payments
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.RecordPaymentRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := h.Svc.RecordPayment(c.UserContext(), caller, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "payment recorded", res)
}

// GET /api/a/payments
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var q dto.PaymentListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	f, err := q.ToFilter()
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Svc.ListPayments(c.UserContext(), caller, f, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p, len(rows)))
}
