package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", cfg.ServerBaseURL)
	assert.Equal(t, "bearer", cfg.AuthTransport)
	assert.Equal(t, "local", cfg.ResolveStrategy)
	assert.Equal(t, "tracker.db", cfg.StorePath)
	assert.Equal(t, 3*time.Second, cfg.BannerTTL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides take effect",
			env: map[string]string{
				"EVENTTRACKER_ADDRESS":    "http://example.com:8080",
				"EVENTTRACKER_TRANSPORT":  "cookie",
				"EVENTTRACKER_RESOLVE":    "server",
				"EVENTTRACKER_STORE":      "/tmp/creds.db",
				"EVENTTRACKER_BANNER_TTL": "5s",
				"EVENTTRACKER_TIMEOUT":    "30s",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://example.com:8080", cfg.ServerBaseURL)
				assert.Equal(t, "cookie", cfg.AuthTransport)
				assert.Equal(t, "server", cfg.ResolveStrategy)
				assert.Equal(t, "/tmp/creds.db", cfg.StorePath)
				assert.Equal(t, 5*time.Second, cfg.BannerTTL)
				assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
			},
		},
		{
			name: "unset keeps defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:5000", cfg.ServerBaseURL)
				assert.Equal(t, "bearer", cfg.AuthTransport)
			},
		},
		{
			name: "bad duration ignored",
			env:  map[string]string{"EVENTTRACKER_TIMEOUT": "soon"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := &Config{}
			cfg.LoadDefaults()
			parseEnv(cfg)
			tt.check(t, cfg)
		})
	}
}
