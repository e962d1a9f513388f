package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("AGRIMARKET_PORT", "")
	t.Setenv("AGRIMARKET_DB_DRIVER", "")
	t.Setenv("AGRIMARKET_AUTO_MIGRATE", "")

	cfg := FromEnv()
	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBDriver != "memory" {
		t.Fatalf("expected default driver memory, got %s", cfg.DBDriver)
	}
	if cfg.AutoMigrate {
		t.Fatal("expected auto-migrate off by default")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AGRIMARKET_PORT", "9000")
	t.Setenv("AGRIMARKET_DB_DRIVER", "postgres")
	t.Setenv("AGRIMARKET_DB_DSN", "host=localhost dbname=agrimarket")
	t.Setenv("AGRIMARKET_AUTO_MIGRATE", "true")
	t.Setenv("AGRIMARKET_SEED", "yes")

	cfg := FromEnv()
	if cfg.Port != "9000" || cfg.DBDriver != "postgres" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.DBDSN != "host=localhost dbname=agrimarket" {
		t.Fatalf("dsn not applied: %s", cfg.DBDSN)
	}
	if !cfg.AutoMigrate || !cfg.SeedOnStart {
		t.Fatalf("boolean flags not applied: %+v", cfg)
	}
}
