package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/configs"
)

var DB *gorm.DB

// DSN builds the postgres URL with a server-side statement_timeout.
func DSN(cfg configs.DBConfig, appName string) string {
	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	q.Set("application_name", appName)
	if cfg.StatementTimeoutMS > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", cfg.StatementTimeoutMS))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// GormConfig is shared by the server, the CLI and tests.
func GormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:         configs.NewGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func ConnectDB(cfg configs.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	log.Info("connecting to postgres",
		zap.String("host", cfg.DB.Host),
		zap.String("db", cfg.DB.Name))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: DSN(cfg.DB, cfg.AppName),
		// PgBouncer transaction pooling
		PreferSimpleProtocol: true,
	}), GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Info("db connected")
	return db, nil
}

func TunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// Ping checks the pool can reach the server.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// WarmUp pings once in the background so the first request does not pay for
// the initial connection.
func WarmUp(db *gorm.DB, log *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(context.Background(), db); err != nil {
			log.Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
