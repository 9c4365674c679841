package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BILL_DUE_DAY", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5, cfg.Billing.DueDay)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BILL_DUE_DAY", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.co.ke, ,https://admin.example.co.ke")
	t.Setenv("DISABLE_SMS", "false")

	cfg := Load()
	assert.Equal(t, 10, cfg.Billing.DueDay)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://app.example.co.ke", "https://admin.example.co.ke"}, cfg.CORSOrigins)
	assert.False(t, cfg.SMS.Disabled)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("BILL_DUE_DAY", "fifth")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	cfg := Load()
	assert.Equal(t, 5, cfg.Billing.DueDay)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestBillingLocation(t *testing.T) {
	assert.Equal(t, time.UTC, BillingConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, "UTC", BillingConfig{Timezone: "UTC"}.Location().String())
}
