package route

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/finance/payments/controller"
	"nyumbasmart_backend/internals/features/finance/payments/service"
)

func PaymentAdminRoutes(admin fiber.Router, svc *service.PaymentService) {
	h := controller.NewPaymentHandler(svc)

	grp := admin.Group("/payments")
	grp.Post("/", h.RecordPayment)
	grp.Get("/", h.ListPayments)
}
