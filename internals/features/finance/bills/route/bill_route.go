package route

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/finance/bills/controller"
	"nyumbasmart_backend/internals/features/finance/bills/service"
)

func BillAdminRoutes(admin fiber.Router, svc *service.BillService) {
	h := controller.NewBillHandler(svc)

	grp := admin.Group("/bills")
	grp.Post("/generate-or-update", h.GenerateOrUpdateBills)
	grp.Get("/", h.ListBills)
	grp.Get("/:bill_id/summary", h.GetBillSummary)
	grp.Post("/:bill_id/remind", h.SendBillReminder)
	grp.Delete("/:bill_id", h.VoidBill)
}
