package route

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/property/tenants/controller"
	"nyumbasmart_backend/internals/features/property/tenants/service"
)

func TenancyAdminRoutes(admin fiber.Router, svc *service.TenancyService) {
	h := controller.NewTenancyHandler(svc)

	admin.Post("/units/:unit_id/tenants", h.AssignTenant)
	admin.Post("/tenants/:tenant_id/vacate", h.VacateTenant)
	admin.Post("/tenants/:tenant_id/transfer", h.TransferTenant)

	admin.Post("/tenants/:tenant_id/vacate-notices", h.GiveVacateNotice)
	admin.Get("/tenants/:tenant_id/vacate-notices", h.ListVacateNotices)
	admin.Post("/vacate-notices/:notice_id/cancel", h.CancelVacateNotice)
}
