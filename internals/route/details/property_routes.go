package details

import (
	"github.com/gofiber/fiber/v2"

	aptRoute "nyumbasmart_backend/internals/features/property/apartments/route"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitRoute "nyumbasmart_backend/internals/features/property/rental_units/route"
	unitService "nyumbasmart_backend/internals/features/property/rental_units/service"
	tenantRoute "nyumbasmart_backend/internals/features/property/tenants/route"
	tenantService "nyumbasmart_backend/internals/features/property/tenants/service"
)

func PropertyAdminRoutes(
	admin fiber.Router,
	apartments *aptService.ApartmentService,
	units *unitService.RentalUnitService,
	tenancy *tenantService.TenancyService,
) {
	aptRoute.ApartmentAdminRoutes(admin, apartments)
	unitRoute.RentalUnitAdminRoutes(admin, units)
	tenantRoute.TenancyAdminRoutes(admin, tenancy)
}
