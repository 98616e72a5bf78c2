package config

import (
	"encoding/json"
	"os"

	"eventtracker/internal/flagx"
	"eventtracker/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. Absent fields keep their current values.
type JSONConfig struct {
	ServerBaseURL   *string         `json:"server_base_url"`
	AuthTransport   *string         `json:"auth_transport"`
	ResolveStrategy *string         `json:"resolve_strategy"`
	StorePath       *string         `json:"store_path"`
	BannerTTL       *timex.Duration `json:"banner_ttl"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flags. When no file is named, nothing happens. Read or
// unmarshal errors panic; the config stage has no reasonable fallback.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.AuthTransport != nil {
		cfg.AuthTransport = *jc.AuthTransport
	}
	if jc.ResolveStrategy != nil {
		cfg.ResolveStrategy = *jc.ResolveStrategy
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.BannerTTL != nil {
		cfg.BannerTTL = jc.BannerTTL.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
