// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate the configuration.
func Validate(cfg *Config) error {
	s := cfg.Gateway.Serial

	if s.Device == "" {
		return fmt.Errorf("serial: device required")
	}
	if s.BaudRate <= 0 {
		return fmt.Errorf("serial: baud_rate must be > 0, got %d", s.BaudRate)
	}
	if s.DataBits < 5 || s.DataBits > 8 {
		return fmt.Errorf("serial: data_bits must be 5-8, got %d", s.DataBits)
	}
	switch s.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("serial: parity must be N, E or O, got %q", s.Parity)
	}
	if s.StopBits != 1 && s.StopBits != 2 {
		return fmt.Errorf("serial: stop_bits must be 1 or 2, got %d", s.StopBits)
	}
	if s.SlaveID < 1 || s.SlaveID > 247 {
		return fmt.Errorf("serial: slave_id must be 1-247, got %d", s.SlaveID)
	}
	if s.TimeoutMs <= 0 {
		return fmt.Errorf("serial: timeout_ms must be > 0, got %d", s.TimeoutMs)
	}

	p := cfg.Gateway.Poll
	if p.PaceMs < 0 {
		return fmt.Errorf("poll: pace_ms must be >= 0, got %d", p.PaceMs)
	}
	if p.IdleBackoffMs <= 0 {
		return fmt.Errorf("poll: idle_backoff_ms must be > 0, got %d", p.IdleBackoffMs)
	}
	if p.InterestTimeoutMs <= 0 {
		return fmt.Errorf("poll: interest_timeout_ms must be > 0, got %d", p.InterestTimeoutMs)
	}

	a := cfg.Gateway.API
	if a.Listen == "" {
		return fmt.Errorf("api: listen address required")
	}
	if a.MaxQuantity < 1 || a.MaxQuantity > 65536 {
		return fmt.Errorf("api: max_quantity must be 1-65536, got %d", a.MaxQuantity)
	}
	if a.ChannelCount < 1 || a.ChannelCount > 65536 {
		return fmt.Errorf("api: channel_count must be 1-65536, got %d", a.ChannelCount)
	}
	if a.ChannelMin >= a.ChannelMax {
		return fmt.Errorf(
			"api: channel_min (%d) must be below channel_max (%d)",
			a.ChannelMin, a.ChannelMax,
		)
	}
	if a.ChannelMin < -32768 || a.ChannelMax > 32767 {
		return fmt.Errorf(
			"api: channel range %d..%d exceeds signed 16-bit",
			a.ChannelMin, a.ChannelMax,
		)
	}

	return nil
}
