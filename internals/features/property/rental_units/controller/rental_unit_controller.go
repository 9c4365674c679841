// file: internals/features/property/rental_units/controller/rental_unit_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/property/rental_units/dto"
	"nyumbasmart_backend/internals/features/property/rental_units/service"
	helper "nyumbasmart_backend/internals/helpers"
)

type RentalUnitHandler struct {
	Svc *service.RentalUnitService
}

func NewRentalUnitHandler(svc *service.RentalUnitService) *RentalUnitHandler {
	return &RentalUnitHandler{Svc: svc}
}

// POST /api/a/apartments/:apartment_id/units
func (h *RentalUnitHandler) CreateRentalUnit(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	aptID, err := helper.ParseUUIDParam(c, "apartment_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.CreateRentalUnitRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	unit, err := h.Svc.CreateRentalUnit(c.UserContext(), caller, aptID, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "rental unit created", unit)
}

// GET /api/a/units/:unit_id
func (h *RentalUnitHandler) GetRentalUnit(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	unitID, err := helper.ParseUUIDParam(c, "unit_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	unit, err := h.Svc.GetRentalUnit(c.UserContext(), caller, unitID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", unit)
}
