// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/configs"
	billService "nyumbasmart_backend/internals/features/finance/bills/service"
	payService "nyumbasmart_backend/internals/features/finance/payments/service"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitService "nyumbasmart_backend/internals/features/property/rental_units/service"
	tenantService "nyumbasmart_backend/internals/features/property/tenants/service"
	"nyumbasmart_backend/internals/middlewares"
	authMiddleware "nyumbasmart_backend/internals/middlewares/auth"
	routeDetails "nyumbasmart_backend/internals/route/details"
)

var startTime time.Time

// Deps is everything the route tree needs. Redis may be nil.
type Deps struct {
	Config configs.AppConfig
	DB     *gorm.DB
	Redis  *redis.Client
	Log    *zap.Logger

	Apartments  *aptService.ApartmentService
	RentalUnits *unitService.RentalUnitService
	Tenancy     *tenantService.TenancyService
	Bills       *billService.BillService
	Payments    *payService.PaymentService
	Inbox       *notifService.InboxService
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	d.Log.Info("setting up base routes")
	BaseRoutes(app, d.DB)

	// ===================== ADMIN (landlord) =====================
	d.Log.Info("setting up admin group", zap.Int("rate_limit_max", d.Config.RateLimit.Max))
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              d.Config.JWTSecret,
			BlacklistChecker:    authMiddleware.RedisBlacklist(d.Redis),
			AllowCookieFallback: true,
		}),
		middlewares.RateLimiter(middlewares.RateLimitOpts{
			Max:        d.Config.RateLimit.Max,
			Expiration: d.Config.RateLimit.Window,
			Redis:      d.Redis,
		}),
	)

	// ===================== MOUNT ROUTES =====================
	d.Log.Info("mounting property routes")
	routeDetails.PropertyAdminRoutes(admin, d.Apartments, d.RentalUnits, d.Tenancy)

	d.Log.Info("mounting finance routes")
	routeDetails.FinanceAdminRoutes(admin, d.Bills, d.Payments)

	d.Log.Info("mounting notification routes")
	routeDetails.NotificationAdminRoutes(admin, d.Inbox)
}
