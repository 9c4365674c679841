package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unitModel "nyumbasmart_backend/internals/features/property/rental_units/model"
	tenantModel "nyumbasmart_backend/internals/features/property/tenants/model"
	"nyumbasmart_backend/internals/helpers/apperr"
	"nyumbasmart_backend/internals/testhelpers"
)

func TestCreateRentalUnit(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRentalUnitService(db, nil)
	owner := uuid.New()
	apt := testhelpers.MustApartment(t, db, owner, "Baraka Court")
	ctx := context.Background()

	unit, err := svc.CreateRentalUnit(ctx, owner, apt.ApartmentID, CreateRentalUnitInput{
		Label:       "A1",
		MonthlyRent: testhelpers.Dec("4999.995"),
		Category:    "Bedsitter",
	})
	require.NoError(t, err)
	assert.Equal(t, unitModel.UnitStatusVacant, unit.RentalUnitStatus)
	assert.Nil(t, unit.RentalUnitCurrentTenantID)
	assert.True(t, testhelpers.Dec("5000").Equal(unit.RentalUnitMonthlyRent))

	got, err := svc.GetRentalUnit(ctx, owner, unit.RentalUnitID)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.RentalUnitLabel)

	_, err = svc.GetRentalUnit(ctx, uuid.New(), unit.RentalUnitID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.CreateRentalUnit(ctx, owner, apt.ApartmentID, CreateRentalUnitInput{Label: "B1", MonthlyRent: testhelpers.Dec("-1")})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.CreateRentalUnit(ctx, uuid.New(), apt.ApartmentID, CreateRentalUnitInput{Label: "B1", MonthlyRent: testhelpers.Dec("100")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.CreateRentalUnit(ctx, owner, uuid.New(), CreateRentalUnitInput{Label: "B1", MonthlyRent: testhelpers.Dec("100")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCheckOccupancy(t *testing.T) {
	tenantID := uuid.New()
	unitID := uuid.New()
	other := uuid.New()

	occupied := unitModel.RentalUnit{RentalUnitID: unitID, RentalUnitStatus: unitModel.UnitStatusOccupied, RentalUnitCurrentTenantID: &tenantID}
	vacant := unitModel.RentalUnit{RentalUnitID: unitID, RentalUnitStatus: unitModel.UnitStatusVacant}
	dangling := unitModel.RentalUnit{RentalUnitID: unitID, RentalUnitStatus: unitModel.UnitStatusVacant, RentalUnitCurrentTenantID: &tenantID}

	assert.True(t, occupied.CheckOccupancy(tenantAt(tenantID, &unitID)))
	assert.False(t, occupied.CheckOccupancy(tenantAt(tenantID, &other)))
	assert.False(t, occupied.CheckOccupancy(nil))
	assert.True(t, vacant.CheckOccupancy(nil))
	assert.False(t, dangling.CheckOccupancy(tenantAt(tenantID, &unitID)))
}

func tenantAt(id uuid.UUID, unit *uuid.UUID) *tenantModel.Tenant {
	return &tenantModel.Tenant{TenantID: id, TenantRentalUnitID: unit}
}
