// Package config loads runtime configuration for the Event Tracker client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file and environment variables (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJSON).
//  4. Command-line flags (see parseFlags), which override everything.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerBaseURL: origin of the backend HTTP API.
//   - AuthTransport: how the credential travels, "bearer" or "cookie".
//     Picked once; the gateway never mixes the two.
//   - ResolveStrategy: how identity is derived from a stored credential,
//     "local" (decode the token) or "server" (GET /check-auth).
//   - StorePath: SQLite file for the durable credential store.
//   - BannerTTL: how long transient error/success banners stay visible.
//   - RequestTimeout: gateway transport timeout.
type Config struct {
	ServerBaseURL   string
	AuthTransport   string
	ResolveStrategy string
	StorePath       string
	BannerTTL       time.Duration
	RequestTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.AuthTransport = "bearer"
	c.ResolveStrategy = "local"
	c.StorePath = "tracker.db"
	c.BannerTTL = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
