package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyumbasmart_backend/internals/helpers/apperr"
	"nyumbasmart_backend/internals/testhelpers"
)

func TestCreateApartment(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewApartmentService(db, nil)
	owner := uuid.New()
	ctx := context.Background()

	desc := "  "
	apt, err := svc.CreateApartment(ctx, owner, CreateApartmentInput{Name: " Baraka Court ", Location: "Kilimani", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Baraka Court", apt.ApartmentName)
	assert.Equal(t, owner, apt.ApartmentOwnerID)
	assert.Nil(t, apt.ApartmentDescription)

	_, err = svc.CreateApartment(ctx, owner, CreateApartmentInput{Name: "No Location"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.CreateApartment(ctx, uuid.Nil, CreateApartmentInput{Name: "x", Location: "y"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestOwnershipChain(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	unit := testhelpers.MustUnit(t, db, apt.ApartmentID, "A1", "5000")

	chain, err := EnsureUnitOwner(ctx, db, owner, unit.RentalUnitID, false)
	require.NoError(t, err)
	assert.Equal(t, owner, chain.OwnerID())
	assert.Equal(t, apt.ApartmentID, chain.Apartment.ApartmentID)

	_, err = EnsureUnitOwner(ctx, db, uuid.New(), unit.RentalUnitID, false)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = ResolveUnit(ctx, db, uuid.New(), false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = EnsureApartmentOwner(ctx, db, uuid.New(), apt.ApartmentID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// soft-deleted apartments drop out of the chain
	require.NoError(t, db.Delete(apt).Error)
	_, err = ResolveUnit(ctx, db, unit.RentalUnitID, false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
