package route

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/notifications/controller"
	"nyumbasmart_backend/internals/features/notifications/service"
)

func InboxAdminRoutes(admin fiber.Router, svc *service.InboxService) {
	h := controller.NewInboxHandler(svc)

	admin.Get("/tenants/:tenant_id/notifications", h.ListTenantNotifications)
	admin.Post("/notifications/:notification_id/read", h.MarkRead)
}
