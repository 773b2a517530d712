package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	JWTSecret       string
	MaxRequestBytes int64
	RankingLimit    int
}

func Load() Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:        getEnv("DANKAG_HTTP_ADDR", ":3000"),
		DatabaseDSN:     getEnv("DANKAG_DB_DSN", "file:dankag.db?cache=shared&mode=rwc"),
		JWTSecret:       getEnv("DANKAG_JWT_SECRET", "dev-secret-change"),
		MaxRequestBytes: 1 << 20,
		RankingLimit:    200,
	}
	if cfg.JWTSecret == "dev-secret-change" {
		log.Println("WARNING: using development JWT secret; set DANKAG_JWT_SECRET")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
