package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it (godotenv.Load never overrides existing ones).
//
// Recognized variables:
//
//	GITREADME_API_URL — backend origin
//	GITREADME_DB      — local database path/DSN
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("GITREADME_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GITREADME_DB"); v != "" {
		cfg.DatabaseDSN = v
	}
}
