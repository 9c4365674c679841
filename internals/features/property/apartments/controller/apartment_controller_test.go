package controller_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	aptRoute "nyumbasmart_backend/internals/features/property/apartments/route"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitRoute "nyumbasmart_backend/internals/features/property/rental_units/route"
	unitService "nyumbasmart_backend/internals/features/property/rental_units/service"
	"nyumbasmart_backend/internals/testhelpers"
)

func TestApartmentAndUnitRoutes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := uuid.New()

	app, admin := testhelpers.NewTestApp(owner)
	aptRoute.ApartmentAdminRoutes(admin, aptService.NewApartmentService(db, zap.NewNop()))
	unitRoute.RentalUnitAdminRoutes(admin, unitService.NewRentalUnitService(db, zap.NewNop()))

	res := testhelpers.DoJSON(t, app, http.MethodPost, "/api/a/apartments", map[string]any{
		"apartment_name":     "  Baraka Court ",
		"apartment_location": "Kilimani, Nairobi",
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Message)
	apt := res.DataMap(t)
	assert.Equal(t, "Baraka Court", apt["apartment_name"])
	aptID := apt["apartment_id"].(string)

	res = testhelpers.DoJSON(t, app, http.MethodPost, "/api/a/apartments", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)

	res = testhelpers.DoJSON(t, app, http.MethodGet, "/api/a/apartments", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Data, 1)

	res = testhelpers.DoJSON(t, app, http.MethodPost, "/api/a/apartments/"+aptID+"/units", map[string]any{
		"rental_unit_label":        "B4",
		"rental_unit_monthly_rent": "7500",
		"rental_unit_category":     "2 Bedroom",
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Message)
	unit := res.DataMap(t)
	assert.Equal(t, "Vacant", unit["rental_unit_status"])
	unitID := unit["rental_unit_id"].(string)

	res = testhelpers.DoJSON(t, app, http.MethodGet, "/api/a/units/"+unitID, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "B4", res.DataMap(t)["rental_unit_label"])

	t.Run("another landlord", func(t *testing.T) {
		other, otherAdmin := testhelpers.NewTestApp(uuid.New())
		unitRoute.RentalUnitAdminRoutes(otherAdmin, unitService.NewRentalUnitService(db, zap.NewNop()))
		res := testhelpers.DoJSON(t, other, http.MethodGet, "/api/a/units/"+unitID, nil)
		assert.Equal(t, http.StatusForbidden, res.Status)
	})
}
