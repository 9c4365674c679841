package details

import (
	"github.com/gofiber/fiber/v2"

	billRoute "nyumbasmart_backend/internals/features/finance/bills/route"
	billService "nyumbasmart_backend/internals/features/finance/bills/service"
	payRoute "nyumbasmart_backend/internals/features/finance/payments/route"
	payService "nyumbasmart_backend/internals/features/finance/payments/service"
)

func FinanceAdminRoutes(admin fiber.Router, bills *billService.BillService, payments *payService.PaymentService) {
	billRoute.BillAdminRoutes(admin, bills)
	payRoute.PaymentAdminRoutes(admin, payments)
}
