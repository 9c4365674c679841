// file: internals/features/property/rental_units/service/rental_unit_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/features/finance/ledger"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

type RentalUnitService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRentalUnitService(db *gorm.DB, log *zap.Logger) *RentalUnitService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RentalUnitService{DB: db, Log: log.Named("rental_units")}
}

type CreateRentalUnitInput struct {
	Label       string
	MonthlyRent decimal.Decimal
	Category    string
	Description *string
}

// CreateRentalUnit adds a vacant unit to an apartment the caller owns.
func (s *RentalUnitService) CreateRentalUnit(ctx context.Context, caller, apartmentID uuid.UUID, in CreateRentalUnitInput) (*unitModel.RentalUnit, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, apperr.InvalidArgument("unit label is required")
	}
	if in.MonthlyRent.IsNegative() {
		return nil, apperr.InvalidArgument("monthly rent must not be negative")
	}

	if _, err := aptService.EnsureApartmentOwner(ctx, s.DB, caller, apartmentID); err != nil {
		return nil, err
	}

	unit := &unitModel.RentalUnit{
		RentalUnitApartmentID: apartmentID,
		RentalUnitLabel:       label,
		RentalUnitMonthlyRent: ledger.RoundCurrency(in.MonthlyRent),
		RentalUnitCategory:    strings.TrimSpace(in.Category),
		RentalUnitStatus:      unitModel.UnitStatusVacant,
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			unit.RentalUnitDescription = &d
		}
	}
	if err := s.DB.WithContext(ctx).Create(unit).Error; err != nil {
		return nil, apperr.Internal(err, "create rental unit")
	}
	return unit, nil
}

// GetRentalUnit returns the unit if the caller owns its apartment.
func (s *RentalUnitService) GetRentalUnit(ctx context.Context, caller, unitID uuid.UUID) (*unitModel.RentalUnit, error) {
	if caller == uuid.Nil {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	chain, err := aptService.EnsureUnitOwner(ctx, s.DB, caller, unitID, false)
	if err != nil {
		return nil, err
	}
	return &chain.Unit, nil
}
