// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func defaultConfig() *Config {
	cfg := &Config{}
	normalize(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(defaultConfig()); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestValidate_BadSlaveID(t *testing.T) {
	cfg := defaultConfig()
	cfg.Gateway.Serial.SlaveID = 248

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for slave_id 248")
	}
}

func TestValidate_BadParity(t *testing.T) {
	cfg := defaultConfig()
	cfg.Gateway.Serial.Parity = "X"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for parity X")
	}
}

func TestValidate_ChannelRangeInverted(t *testing.T) {
	cfg := defaultConfig()
	cfg.Gateway.API.ChannelMin = 100
	cfg.Gateway.API.ChannelMax = -100

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for inverted channel range")
	}
}

func TestValidate_ChannelRangeExceedsInt16(t *testing.T) {
	cfg := defaultConfig()
	cfg.Gateway.API.ChannelMin = -40000
	cfg.Gateway.API.ChannelMax = 100

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for range below int16")
	}
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gateway.Serial.BaudRate != defaultBaudRate {
		t.Fatalf("baud_rate = %d, want default %d", cfg.Gateway.Serial.BaudRate, defaultBaudRate)
	}
	if cfg.Gateway.API.ChannelMin != defaultChannelMin {
		t.Fatalf("channel_min = %d, want %d", cfg.Gateway.API.ChannelMin, defaultChannelMin)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	body := []byte(`
gateway:
  serial:
    device: /dev/ttyUSB1
    baud_rate: 9600
    slave_id: 7
  poll:
    disjoint_ranges: true
  api:
    listen: ":9000"
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gateway.Serial.Device != "/dev/ttyUSB1" || cfg.Gateway.Serial.BaudRate != 9600 {
		t.Fatalf("serial = %+v", cfg.Gateway.Serial)
	}
	if cfg.Gateway.Serial.SlaveID != 7 {
		t.Fatalf("slave_id = %d, want 7", cfg.Gateway.Serial.SlaveID)
	}
	if !cfg.Gateway.Poll.DisjointRanges {
		t.Fatal("disjoint_ranges not set")
	}
	// Untouched fields keep their defaults.
	if cfg.Gateway.Serial.DataBits != defaultDataBits {
		t.Fatalf("data_bits = %d, want default", cfg.Gateway.Serial.DataBits)
	}
	if cfg.Gateway.API.Listen != ":9000" {
		t.Fatalf("listen = %q", cfg.Gateway.API.Listen)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/gateway.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
