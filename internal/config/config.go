package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort string

	DBDriver   string // "sqlite3" hoặc "postgres"
	DBPath     string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AWSRegion          string
	SQSBookingQueueURL string

	JWTSecret          string        // rỗng = tắt xác thực operator
	JWTExpirationHours time.Duration // Thời gian hết hạn của JWT
	AdminUsername      string
	AdminPassword      string

	LogLevel       string
	LogFormat      string // "console" hoặc "json"
	MetricsEnabled bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	metricsEnabled, _ := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite3")),
		DBPath:     getEnv("DB_PATH", "data/data.sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "parking"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "parking_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		AWSRegion:          getEnv("AWS_REGION", "ap-southeast-1"),
		SQSBookingQueueURL: getEnv("SQS_BOOKING_QUEUE_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: time.Duration(jwtExpHours) * time.Hour,
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		MetricsEnabled: metricsEnabled,
	}
}

// AuthEnabled reports whether operator endpoints are guarded by JWT.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Debug().Str("key", key).Str("default", fallback).Msg("environment variable not set, using default")
	return fallback
}
