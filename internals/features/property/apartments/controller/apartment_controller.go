// file: internals/features/property/apartments/controller/apartment_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"nyumbasmart_backend/internals/features/property/apartments/dto"
	"nyumbasmart_backend/internals/features/property/apartments/service"
	helper "nyumbasmart_backend/internals/helpers"
)

type ApartmentHandler struct {
	Svc *service.ApartmentService
}

func NewApartmentHandler(svc *service.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{Svc: svc}
}

// POST /api/a/apartments
func (h *ApartmentHandler) CreateApartment(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.CreateApartmentRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	apt, err := h.Svc.CreateApartment(c.UserContext(), caller, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "apartment created", dto.FromApartmentModel(apt))
}

// GET /api/a/apartments
func (h *ApartmentHandler) ListApartments(c *fiber.Ctx) error {
	caller, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := h.Svc.ListApartments(c.UserContext(), caller)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromApartmentModels(rows))
}
