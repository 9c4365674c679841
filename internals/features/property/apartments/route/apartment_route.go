package route

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/property/apartments/controller"
	"nyumbasmart_backend/internals/features/property/apartments/service"
)

func ApartmentAdminRoutes(admin fiber.Router, svc *service.ApartmentService) {
	h := controller.NewApartmentHandler(svc)

	grp := admin.Group("/apartments")
	grp.Post("/", h.CreateApartment)
	grp.Get("/", h.ListApartments)
}
