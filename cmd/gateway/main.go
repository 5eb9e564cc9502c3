// cmd/gateway/main.go

// The gateway daemon bridges a Modbus-RTU serial slave to a JSON HTTP
// API. One background worker owns the serial line; API callers read a
// register cache and enqueue writes without ever blocking on hardware.
//
// Usage:
//
//	gateway [flags]
//
// Flags:
//
//	-config string  Path to config file (default: built-in defaults)
//	-listen string  HTTP listen address (overrides config)
//	-device string  Serial device path (overrides config)
//	-baud int       Serial baud rate (overrides config)
//	-slave int      Modbus slave address (overrides config)
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BKVdevi/halow-jet-webconsole/internal/api"
	"github.com/BKVdevi/halow-jet-webconsole/internal/config"
	"github.com/BKVdevi/halow-jet-webconsole/internal/gateway"
	"github.com/BKVdevi/halow-jet-webconsole/internal/metrics"
	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
	"github.com/BKVdevi/halow-jet-webconsole/internal/sysinfo"
	"github.com/BKVdevi/halow-jet-webconsole/internal/transport"
)

const sysinfoInterval = 330 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "Path to config file")
	listen := flag.String("listen", "", "HTTP listen address")
	device := flag.String("device", "", "Serial device path")
	baud := flag.Int("baud", 0, "Serial baud rate")
	slave := flag.Int("slave", 0, "Modbus slave address")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("config load failed: %v", err)
	}

	if *listen != "" {
		cfg.Gateway.API.Listen = *listen
	}
	if *device != "" {
		cfg.Gateway.Serial.Device = *device
	}
	if *baud != 0 {
		cfg.Gateway.Serial.BaudRate = *baud
	}
	if *slave != 0 {
		cfg.Gateway.Serial.SlaveID = uint8(*slave)
	}

	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("config validation failed: %v", err)
	}

	serial := cfg.Gateway.Serial
	logger.Printf("serial device: %s @ %d baud, slave %d", serial.Device, serial.BaudRate, serial.SlaveID)
	logger.Printf("listening on %s", cfg.Gateway.API.Listen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build the gateway
	// --------------------

	rings := gateway.NewRings()

	link := transport.NewLink(transport.SerialDialer(transport.SerialConfig{
		Device:   serial.Device,
		BaudRate: serial.BaudRate,
		DataBits: serial.DataBits,
		Parity:   serial.Parity,
		StopBits: serial.StopBits,
		Timeout:  time.Duration(serial.TimeoutMs) * time.Millisecond,
	}))
	tr := transport.New(link, status.SettleDelay, rings)
	defer tr.Close()

	gw := gateway.New(tr, rings, gateway.Options{
		Slave:           serial.SlaveID,
		Pace:            time.Duration(cfg.Gateway.Poll.PaceMs) * time.Millisecond,
		IdleBackoff:     time.Duration(cfg.Gateway.Poll.IdleBackoffMs) * time.Millisecond,
		InterestTimeout: time.Duration(cfg.Gateway.Poll.InterestTimeoutMs) * time.Millisecond,
		DisjointRanges:  cfg.Gateway.Poll.DisjointRanges,
		Logger:          logger,
	})
	gw.Start(ctx)

	sampler := sysinfo.NewSampler(sysinfoInterval, logger)
	go sampler.Run(ctx)

	prometheus.MustRegister(metrics.NewCollector(gw))

	// --------------------
	// HTTP surface
	// --------------------

	mux := http.NewServeMux()
	api.New(gw, sampler, api.Limits{
		MaxQuantity:  cfg.Gateway.API.MaxQuantity,
		ChannelCount: cfg.Gateway.API.ChannelCount,
		ChannelMin:   cfg.Gateway.API.ChannelMin,
		ChannelMax:   cfg.Gateway.API.ChannelMax,
	}, logger).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Gateway.API.Listen,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Print("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	if err := gw.Stop(5 * time.Second); err != nil {
		logger.Printf("worker shutdown: %v", err)
	}
	logger.Print("gateway stopped")
}
