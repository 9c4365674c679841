// file: internals/features/property/rental_units/dto/rental_unit_dto.go
package dto

import (
	"github.com/shopspring/decimal"

	"nyumbasmart_backend/internals/features/property/rental_units/service"
)

type CreateRentalUnitRequest struct {
	RentalUnitLabel       string           `json:"rental_unit_label" validate:"required,max=50"`
	RentalUnitMonthlyRent *decimal.Decimal `json:"rental_unit_monthly_rent" validate:"required"`
	RentalUnitCategory    string           `json:"rental_unit_category" validate:"omitempty,max=50"`
	RentalUnitDescription *string          `json:"rental_unit_description,omitempty"`
}

func (r CreateRentalUnitRequest) ToInput() service.CreateRentalUnitInput {
	in := service.CreateRentalUnitInput{
		Label:       r.RentalUnitLabel,
		Category:    r.RentalUnitCategory,
		Description: r.RentalUnitDescription,
	}
	if r.RentalUnitMonthlyRent != nil {
		in.MonthlyRent = *r.RentalUnitMonthlyRent
	}
	return in
}
