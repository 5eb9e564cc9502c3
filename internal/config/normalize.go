// internal/config/normalize.go
package config

// Defaults match the field deployment: a 115200 baud slave on
// /dev/ttyACM0 answering at address 5, API on localhost:8082.
const (
	defaultDevice    = "/dev/ttyACM0"
	defaultBaudRate  = 115200
	defaultDataBits  = 8
	defaultParity    = "N"
	defaultStopBits  = 1
	defaultSlaveID   = 5
	defaultTimeoutMs = 1000

	defaultPaceMs            = 100
	defaultIdleBackoffMs     = 500
	defaultInterestTimeoutMs = 10000

	defaultListen       = "localhost:8082"
	defaultMaxQuantity  = 1000
	defaultChannelCount = 16
	defaultChannelMin   = -100
	defaultChannelMax   = 100
)

// normalize fills unset fields with defaults. It runs before Validate
// so validation sees the effective configuration.
func normalize(cfg *Config) {
	s := &cfg.Gateway.Serial
	if s.Device == "" {
		s.Device = defaultDevice
	}
	if s.BaudRate == 0 {
		s.BaudRate = defaultBaudRate
	}
	if s.DataBits == 0 {
		s.DataBits = defaultDataBits
	}
	if s.Parity == "" {
		s.Parity = defaultParity
	}
	if s.StopBits == 0 {
		s.StopBits = defaultStopBits
	}
	if s.SlaveID == 0 {
		s.SlaveID = defaultSlaveID
	}
	if s.TimeoutMs == 0 {
		s.TimeoutMs = defaultTimeoutMs
	}

	p := &cfg.Gateway.Poll
	if p.PaceMs == 0 {
		p.PaceMs = defaultPaceMs
	}
	if p.IdleBackoffMs == 0 {
		p.IdleBackoffMs = defaultIdleBackoffMs
	}
	if p.InterestTimeoutMs == 0 {
		p.InterestTimeoutMs = defaultInterestTimeoutMs
	}

	a := &cfg.Gateway.API
	if a.Listen == "" {
		a.Listen = defaultListen
	}
	if a.MaxQuantity == 0 {
		a.MaxQuantity = defaultMaxQuantity
	}
	if a.ChannelCount == 0 {
		a.ChannelCount = defaultChannelCount
	}
	if a.ChannelMin == 0 && a.ChannelMax == 0 {
		a.ChannelMin = defaultChannelMin
		a.ChannelMax = defaultChannelMax
	}
}
