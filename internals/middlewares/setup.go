package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"
)

// SetupMiddlewares installs the app-wide chain. Access logging lives in the
// logger subpackage and is added by main.
func SetupMiddlewares(app *fiber.App, log *zap.Logger, corsOrigins []string) {
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestID(5 * time.Second))
	app.Use(CorsMiddleware(corsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}
