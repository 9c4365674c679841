package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nyumbasmart_backend/internals/configs"
	billService "nyumbasmart_backend/internals/features/finance/bills/service"
	payService "nyumbasmart_backend/internals/features/finance/payments/service"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitService "nyumbasmart_backend/internals/features/property/rental_units/service"
	tenantService "nyumbasmart_backend/internals/features/property/tenants/service"
	"nyumbasmart_backend/internals/testhelpers"
)

const secret = "route-test-secret"

func newServer(t *testing.T) *fiber.App {
	db := testhelpers.NewTestDB(t)
	log := zap.NewNop()
	cfg := configs.AppConfig{
		JWTSecret: secret,
		RateLimit: configs.RateLimitConfig{Max: 3, Window: time.Minute},
	}

	app := fiber.New()
	SetupRoutes(app, Deps{
		Config:      cfg,
		DB:          db,
		Log:         log,
		Apartments:  aptService.NewApartmentService(db, log),
		RentalUnits: unitService.NewRentalUnitService(db, log),
		Tenancy:     tenantService.NewTenancyService(db, log),
		Bills:       billService.NewBillService(db, log, nil, 5, time.UTC),
		Payments:    payService.NewPaymentService(db, log, nil),
		Inbox:       notifService.NewInboxService(db),
	})
	return app
}

func token(t *testing.T, user uuid.UUID) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func get(t *testing.T, app *fiber.App, path, bearer string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	app := newServer(t)
	assert.Equal(t, http.StatusOK, get(t, app, "/health", ""))
	assert.Equal(t, http.StatusOK, get(t, app, "/health/db", ""))
}

func TestAdminGroupRequiresToken(t *testing.T) {
	app := newServer(t)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/api/a/apartments", ""))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/api/a/apartments", "garbage"))
	assert.Equal(t, http.StatusOK, get(t, app, "/api/a/apartments", token(t, uuid.New())))
}

func TestAdminGroupRateLimitedPerLandlord(t *testing.T) {
	app := newServer(t)
	a, b := token(t, uuid.New()), token(t, uuid.New())

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, get(t, app, "/api/a/bills", a))
	}
	assert.Equal(t, http.StatusTooManyRequests, get(t, app, "/api/a/bills", a))
	assert.Equal(t, http.StatusOK, get(t, app, "/api/a/payments", b))
}
