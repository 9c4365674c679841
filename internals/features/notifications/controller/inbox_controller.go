// file: internals/features/notifications/controller/inbox_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/notifications/service"
	helper "nyumbasmart_backend/internals/helpers"
)

type InboxHandler struct {
	Svc *service.InboxService
}

func NewInboxHandler(svc *service.InboxService) *InboxHandler {
	return &InboxHandler{Svc: svc}
}

// GET /api/a/tenants/:tenant_id/notifications?unread=true
func (h *InboxHandler) ListTenantNotifications(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	tenantID, err := helper.ParseUUIDParam(c, "tenant_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	f := service.InboxFilter{UnreadOnly: c.QueryBool("unread", false)}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Svc.ListTenantNotifications(c.UserContext(), caller, tenantID, f, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p, len(rows)))
}

// POST /api/a/notifications/:notification_id/read
func (h *InboxHandler) MarkRead(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "notification_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	n, err := h.Svc.MarkRead(c.UserContext(), caller, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "notification read", n)
}
