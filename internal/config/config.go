package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the fallback signing key used when JWT_SECRET is unset.
// Deployments must override it; the fallback exists so a bare checkout runs.
const DefaultJWTSecret = "talentgrid-dev-secret"

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	TokenTTLHours int
	RedisAddr     string // empty disables rate limiting
	CORSOrigin    string
	SweepSchedule string // cron spec for the job expiry sweeper
	Production    bool
}

// Load loads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "168"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./talentgrid.db"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTLHours: ttl,
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SweepSchedule: getEnv("JOB_SWEEP_SCHEDULE", "*/5 * * * *"),
		Production:    getEnv("APP_ENV", "development") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
