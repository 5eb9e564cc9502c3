// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
}

// ---- GATEWAY ----

type GatewayConfig struct {
	Serial SerialConfig `yaml:"serial"`
	Poll   PollConfig   `yaml:"poll"`
	API    APIConfig    `yaml:"api"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // "N", "E", "O"
	StopBits  int    `yaml:"stop_bits"`
	SlaveID   uint8  `yaml:"slave_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	PaceMs            int  `yaml:"pace_ms"`
	IdleBackoffMs     int  `yaml:"idle_backoff_ms"`
	InterestTimeoutMs int  `yaml:"interest_timeout_ms"`
	DisjointRanges    bool `yaml:"disjoint_ranges"`
}

// ---- API ----

// APIConfig carries the HTTP surface and its per-endpoint validation
// limits. Limits live here, not as magic numbers inside handlers.
type APIConfig struct {
	Listen string `yaml:"listen"`

	// Register endpoints.
	MaxQuantity int `yaml:"max_quantity"`

	// Channel endpoints (signed view over the first registers).
	ChannelCount int `yaml:"channel_count"`
	ChannelMin   int `yaml:"channel_min"`
	ChannelMax   int `yaml:"channel_max"`
}

// Load reads and normalizes a config file. An empty path yields the
// built-in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	normalize(cfg)
	return cfg, nil
}
