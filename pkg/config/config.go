package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"accounts/internal/core/util"
)

// Config carries process configuration. Everything comes from the
// environment, with a .env file loaded first when present.
type Config struct {
	Env            string
	Port           string
	MetricsPort    string
	OTLPEndpoint   string
	DatabaseDriver string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string
	BcryptCost     int

	RateLimitEnabled bool
}

func Load() Config {
	godotenv.Load()

	return Config{
		Env:              getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		MetricsPort:      getEnv("METRICS_PORT", "9091"),
		OTLPEndpoint:     getEnv("OTLP_ENDPOINT", "localhost:4317"),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabasePath:     getEnv("DATABASE_PATH", "accounts.db"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "db/migrations"),
		BcryptCost:       getEnvInt("BCRYPT_COST", util.DefaultCost),
		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			return fallback
		}

		return b
	}

	return fallback
}
