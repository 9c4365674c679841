// file: internals/features/property/apartments/service/ownership.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aptModel "nyumbasmart_backend/internals/features/property/apartments/model"
	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	"nyumbasmart_backend/internals/helpers/apperr"
)

// UnitChain is a rental unit together with the building that owns it.
type UnitChain struct {
	Unit      unitModel.RentalUnit
	Apartment aptModel.Apartment
}

func (c UnitChain) OwnerID() uuid.UUID { return c.Apartment.ApartmentOwnerID }

// FindApartment loads a live apartment or returns NotFound.
func FindApartment(ctx context.Context, db *gorm.DB, apartmentID uuid.UUID) (aptModel.Apartment, error) {
	var apt aptModel.Apartment
	err := db.WithContext(ctx).
		Where("apartment_id = ?", apartmentID).
		Take(&apt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apt, apperr.NotFound("apartment %s not found", apartmentID)
	}
	if err != nil {
		return apt, apperr.Internal(err, "load apartment")
	}
	return apt, nil
}

// EnsureApartmentOwner loads the apartment and checks the caller owns it.
func EnsureApartmentOwner(ctx context.Context, db *gorm.DB, caller, apartmentID uuid.UUID) (aptModel.Apartment, error) {
	apt, err := FindApartment(ctx, db, apartmentID)
	if err != nil {
		return apt, err
	}
	if !apt.OwnedBy(caller) {
		return apt, apperr.Forbidden("apartment %s is not managed by this landlord", apartmentID)
	}
	return apt, nil
}

// ResolveUnit walks unit -> apartment. With lock set the unit row is read
// FOR UPDATE, so db must be a transaction.
func ResolveUnit(ctx context.Context, db *gorm.DB, unitID uuid.UUID, lock bool) (UnitChain, error) {
	var chain UnitChain

	q := db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Where("rental_unit_id = ?", unitID).Take(&chain.Unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return chain, apperr.NotFound("rental unit %s not found", unitID)
	}
	if err != nil {
		return chain, apperr.Internal(err, "load rental unit")
	}

	apt, err := FindApartment(ctx, db, chain.Unit.RentalUnitApartmentID)
	if err != nil {
		return chain, err
	}
	chain.Apartment = apt
	return chain, nil
}

// EnsureUnitOwner resolves the chain and checks the caller owns it.
func EnsureUnitOwner(ctx context.Context, db *gorm.DB, caller, unitID uuid.UUID, lock bool) (UnitChain, error) {
	chain, err := ResolveUnit(ctx, db, unitID, lock)
	if err != nil {
		return chain, err
	}
	if !chain.Apartment.OwnedBy(caller) {
		return chain, apperr.Forbidden("rental unit %s is not managed by this landlord", unitID)
	}
	return chain, nil
}
