package details

import (
	"github.com/gofiber/fiber/v2"

	notifRoute "nyumbasmart_backend/internals/features/notifications/route"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
)

func NotificationAdminRoutes(admin fiber.Router, inbox *notifService.InboxService) {
	if inbox == nil {
		return
	}
	notifRoute.InboxAdminRoutes(admin, inbox)
}
