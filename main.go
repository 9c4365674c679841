package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nyumbasmart_backend/internals/configs"
	database "nyumbasmart_backend/internals/databases"
	billService "nyumbasmart_backend/internals/features/finance/bills/service"
	payService "nyumbasmart_backend/internals/features/finance/payments/service"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
	aptService "nyumbasmart_backend/internals/features/property/apartments/service"
	unitService "nyumbasmart_backend/internals/features/property/rental_units/service"
	tenantService "nyumbasmart_backend/internals/features/property/tenants/service"
	middlewares "nyumbasmart_backend/internals/middlewares"
	accessLog "nyumbasmart_backend/internals/middlewares/logger"
	routes "nyumbasmart_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	log, err := configs.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.AppName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	if err := database.TunePool(db); err != nil {
		log.Warn("tune pool", zap.Error(err))
	}
	database.WarmUp(db, log)

	rdb, err := database.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		// limiter falls back to process memory
		log.Warn("redis unavailable", zap.Error(err))
		rdb = nil
	}

	notifier := notifService.NewNotifier(notifService.NewSender(cfg.SMS, log), db, log, cfg.SMS.Timeout)
	loc := cfg.Billing.Location()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, log, cfg.CORSOrigins)
	app.Use(accessLog.LoggerMiddleware(log))

	routes.SetupRoutes(app, routes.Deps{
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		Log:         log,
		Apartments:  aptService.NewApartmentService(db, log),
		RentalUnits: unitService.NewRentalUnitService(db, log),
		Tenancy:     tenantService.NewTenancyService(db, log),
		Bills:       billService.NewBillService(db, log, notifier, cfg.Billing.DueDay, loc),
		Payments:    payService.NewPaymentService(db, log, notifier),
		Inbox:       notifService.NewInboxService(db),
	})

	// keep-alive and connection timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: stop HTTP, drain notifications, close pools
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	notifier.Wait()
	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close(db)
}
