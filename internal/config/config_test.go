package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "") // khôi phục giá trị cũ sau test
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "SERVER_PORT", "DB_DRIVER", "DB_PATH", "JWT_SECRET", "JWT_EXPIRATION_HOURS",
		"METRICS_ENABLED", "SQS_BOOKING_QUEUE_URL", "LOG_LEVEL", "LOG_FORMAT", "ADMIN_USERNAME")

	cfg := Load()
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "data/data.sqlite", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpirationHours)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.SQSBookingQueueURL)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpirationHours)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.AuthEnabled())
}
