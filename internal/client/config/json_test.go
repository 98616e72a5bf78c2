package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")

	data := `{
		"server_base_url": "http://api.internal:9000",
		"auth_transport": "cookie",
		"banner_ttl": "7s",
		"request_timeout": 60000000000
	}`
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-config", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "http://api.internal:9000", cfg.ServerBaseURL)
	assert.Equal(t, "cookie", cfg.AuthTransport)
	assert.Equal(t, 7*time.Second, cfg.BannerTTL)
	assert.Equal(t, time.Minute, cfg.RequestTimeout)
	// absent keys keep defaults
	assert.Equal(t, "local", cfg.ResolveStrategy)
	assert.Equal(t, "tracker.db", cfg.StorePath)
}

func TestParseJSON_NoFileNamed(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "http://localhost:5000", cfg.ServerBaseURL)
}

func TestParseJSON_MissingFilePanics(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", "/nonexistent/config.json"}

	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Panics(t, func() { parseJSON(cfg) })
}
