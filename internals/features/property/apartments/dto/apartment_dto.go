// file: internals/features/property/apartments/dto/apartment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	aptModel "nyumbasmart_backend/internals/features/property/apartments/model"
	"nyumbasmart_backend/internals/features/property/apartments/service"
)

type CreateApartmentRequest struct {
	ApartmentName        string  `json:"apartment_name" validate:"required,max=150"`
	ApartmentLocation    string  `json:"apartment_location" validate:"required,max=255"`
	ApartmentDescription *string `json:"apartment_description,omitempty"`
}

func (r CreateApartmentRequest) ToInput() service.CreateApartmentInput {
	return service.CreateApartmentInput{
		Name:        r.ApartmentName,
		Location:    r.ApartmentLocation,
		Description: r.ApartmentDescription,
	}
}

type ApartmentResponse struct {
	ApartmentID          uuid.UUID `json:"apartment_id"`
	ApartmentOwnerID     uuid.UUID `json:"apartment_owner_id"`
	ApartmentName        string    `json:"apartment_name"`
	ApartmentLocation    string    `json:"apartment_location"`
	ApartmentDescription *string   `json:"apartment_description,omitempty"`
	ApartmentCreatedAt   time.Time `json:"apartment_created_at"`
}

func FromApartmentModel(m *aptModel.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ApartmentID:          m.ApartmentID,
		ApartmentOwnerID:     m.ApartmentOwnerID,
		ApartmentName:        m.ApartmentName,
		ApartmentLocation:    m.ApartmentLocation,
		ApartmentDescription: m.ApartmentDescription,
		ApartmentCreatedAt:   m.ApartmentCreatedAt,
	}
}

func FromApartmentModels(rows []aptModel.Apartment) []ApartmentResponse {
	out := make([]ApartmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromApartmentModel(&rows[i]))
	}
	return out
}
