// file: internals/features/property/apartments/service/apartment_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aptModel "nyumbasmart_backend/internals/features/property/apartments/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

type ApartmentService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewApartmentService(db *gorm.DB, log *zap.Logger) *ApartmentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApartmentService{DB: db, Log: log.Named("apartments")}
}

type CreateApartmentInput struct {
	Name        string
	Location    string
	Description *string
}

// CreateApartment registers a building owned by the caller.
func (s *ApartmentService) CreateApartment(ctx context.Context, caller uuid.UUID, in CreateApartmentInput) (*aptModel.Apartment, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" {
		return nil, apperr.InvalidArgument("apartment name and location are required")
	}

	apt := &aptModel.Apartment{
		ApartmentOwnerID:     caller,
		ApartmentName:        name,
		ApartmentLocation:    location,
		ApartmentDescription: trimPtr(in.Description),
	}
	if err := s.DB.WithContext(ctx).Create(apt).Error; err != nil {
		return nil, apperr.Internal(err, "create apartment")
	}
	s.Log.Info("apartment created",
		zap.String("apartment_id", apt.ApartmentID.String()),
		zap.String("owner_id", caller.String()))
	return apt, nil
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// ListApartments returns the caller's live apartments by name.
func (s *ApartmentService) ListApartments(ctx context.Context, caller uuid.UUID) ([]aptModel.Apartment, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	var rows []aptModel.Apartment
	if err := s.DB.WithContext(ctx).
		Where("apartment_owner_id = ?", caller).
		Order("apartment_name").
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal(err, "list apartments")
	}
	return rows, nil
}
