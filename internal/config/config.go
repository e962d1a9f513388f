package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	Env         string
	DBDriver    string
	DBDSN       string
	AutoMigrate bool
	SeedOnStart bool
}

// FromEnv builds a Config from environment variables, with sane defaults.
func FromEnv() Config {
	return Config{
		Port:        envOr("AGRIMARKET_PORT", "8000"),
		Env:         envOr("AGRIMARKET_ENV", "development"),
		DBDriver:    envOr("AGRIMARKET_DB_DRIVER", "memory"),
		DBDSN:       envOr("AGRIMARKET_DB_DSN", "agrimarket.db"),
		AutoMigrate: envBool("AGRIMARKET_AUTO_MIGRATE"),
		SeedOnStart: envBool("AGRIMARKET_SEED"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
