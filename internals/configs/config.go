package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env in local runs. On a managed platform the environment is
// already populated, so the file is not required.
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" || os.Getenv("RENDER") != "" {
		log.Println("running on a managed platform, using system ENV")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system ENV")
	} else {
		log.Println(".env file loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// =======================
// TYPED CONFIG
// =======================

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// statement_timeout in milliseconds, applied through the DSN options
	StatementTimeoutMS int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type SMSConfig struct {
	Disabled bool
	Username string
	APIKey   string
	SenderID string
	BaseURL  string
	Timeout  time.Duration
}

type BillingConfig struct {
	// day of the billing month a bill falls due
	DueDay   int
	Timezone string
}

type AppConfig struct {
	AppName   string
	Port      string
	JWTSecret string
	LogLevel  string
	LogFormat string

	// allowed browser origins for the landlord dashboard
	CORSOrigins []string

	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	SMS       SMSConfig
	Billing   BillingConfig
}

// Load reads the typed configuration. Call LoadEnv first.
func Load() AppConfig {
	cfg := AppConfig{
		AppName:   GetEnv("APP_NAME", "nyumbasmart"),
		Port:      GetEnv("PORT", "3000"),
		JWTSecret: GetEnv("JWT_SECRET"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "json"),

		CORSOrigins: splitCSV(GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DB: DBConfig{
			Host:               GetEnv("DB_HOST", "localhost"),
			Port:               GetEnv("DB_PORT", "5432"),
			User:               GetEnv("DB_USER", "postgres"),
			Password:           GetEnv("DB_PASSWORD"),
			Name:               GetEnv("DB_NAME", "nyumbasmart"),
			SSLMode:            GetEnv("DB_SSLMODE", "disable"),
			StatementTimeoutMS: getEnvInt("DB_STATEMENT_TIMEOUT_MS", 3000),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR"),
			Password: GetEnv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvInt("RATE_LIMIT_MAX", 100),
			Window: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		SMS: SMSConfig{
			Disabled: getEnvBool("DISABLE_SMS", true),
			Username: GetEnv("AFRICASTALKING_USERNAME", GetEnv("AT_USERNAME")),
			APIKey:   GetEnv("AFRICASTALKING_API_KEY", GetEnv("AT_API_KEY")),
			SenderID: GetEnv("AFRICASTALKING_SENDER_ID"),
			BaseURL:  GetEnv("AFRICASTALKING_BASE_URL", "https://api.africastalking.com"),
			Timeout:  getEnvDuration("SMS_TIMEOUT", 10*time.Second),
		},
		Billing: BillingConfig{
			DueDay:   getEnvInt("BILL_DUE_DAY", 5),
			Timezone: GetEnv("APP_TIMEZONE", "Africa/Nairobi"),
		},
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set")
	}
	return cfg
}

func splitCSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location resolves the billing timezone, falling back to UTC.
func (c BillingConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.UTC
}
