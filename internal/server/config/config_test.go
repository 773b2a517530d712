package config

import (
	"os"
	"testing"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	// defaults
	os.Unsetenv("DANKAG_HTTP_ADDR")
	os.Unsetenv("DANKAG_DB_DSN")
	os.Unsetenv("DANKAG_JWT_SECRET")
	cfg := Load()
	if cfg.HTTPAddr == "" || cfg.DatabaseDSN == "" || cfg.JWTSecret == "" {
		t.Fatalf("empty config fields")
	}
	if cfg.RankingLimit != 200 {
		t.Fatalf("ranking limit: %d", cfg.RankingLimit)
	}

	// env override
	os.Setenv("DANKAG_HTTP_ADDR", ":9999")
	os.Setenv("DANKAG_DB_DSN", "file::memory:")
	os.Setenv("DANKAG_JWT_SECRET", "secret")
	cfg = Load()
	if cfg.HTTPAddr != ":9999" || cfg.DatabaseDSN != "file::memory:" || cfg.JWTSecret != "secret" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}
