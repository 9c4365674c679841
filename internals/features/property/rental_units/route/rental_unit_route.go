package route

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/property/rental_units/controller"
	"nyumbasmart_backend/internals/features/property/rental_units/service"
)

func RentalUnitAdminRoutes(admin fiber.Router, svc *service.RentalUnitService) {
	h := controller.NewRentalUnitHandler(svc)

	admin.Post("/apartments/:apartment_id/units", h.CreateRentalUnit)
	admin.Get("/units/:unit_id", h.GetRentalUnit)
}
