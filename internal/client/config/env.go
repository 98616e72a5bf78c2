package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a local
// .env file first when one exists. Unset variables leave the current
// values untouched.
//
// Recognized variables:
//
//	EVENTTRACKER_ADDRESS     backend origin, e.g. http://localhost:5000
//	EVENTTRACKER_TRANSPORT   credential transport: bearer | cookie
//	EVENTTRACKER_RESOLVE     identity resolution: local | server
//	EVENTTRACKER_STORE       path of the local SQLite store
//	EVENTTRACKER_BANNER_TTL  banner lifetime, e.g. "3s"
//	EVENTTRACKER_TIMEOUT     request timeout, e.g. "15s"
func parseEnv(cfg *Config) {
	// A missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("EVENTTRACKER_ADDRESS"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("EVENTTRACKER_TRANSPORT"); v != "" {
		cfg.AuthTransport = v
	}
	if v := os.Getenv("EVENTTRACKER_RESOLVE"); v != "" {
		cfg.ResolveStrategy = v
	}
	if v := os.Getenv("EVENTTRACKER_STORE"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("EVENTTRACKER_BANNER_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BannerTTL = d
		}
	}
	if v := os.Getenv("EVENTTRACKER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
