// internal/sysinfo/sysinfo.go

// Package sysinfo samples host health (CPU, memory, swap, temperature)
// in the background so the web console can show it next to the Modbus
// state without touching /proc on every request.
package sysinfo

import (
	"context"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const gib = 1024 * 1024 * 1024

// Snapshot is the system-data contract of the console's root endpoint.
type Snapshot struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedGB  float64 `json:"memory_used_gb"`
	MemoryTotalGB float64 `json:"memory_total_gb"`
	SwapPercent   float64 `json:"swap_percent"`
	SwapUsedGB    float64 `json:"swap_used_gb"`
	CPUTemp       float64 `json:"cpu_temp"`
	LastUpdate    string  `json:"last_update"`
}

// Sampler refreshes a Snapshot on a fixed cadence.
type Sampler struct {
	mu       sync.RWMutex
	snap     Snapshot
	interval time.Duration
	logger   *log.Logger
}

func NewSampler(interval time.Duration, logger *log.Logger) *Sampler {
	if logger == nil {
		logger = log.Default()
	}
	return &Sampler{interval: interval, logger: logger}
}

// Run samples until the context is cancelled. Meant to be launched as
// its own goroutine.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

// Snapshot returns the latest sample.
func (s *Sampler) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Sampler) sample() {
	var snap Snapshot

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = round1(percents[0])
	} else if err != nil {
		s.logger.Printf("sysinfo: cpu sample failed: %v", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemoryPercent = round1(vm.UsedPercent)
		snap.MemoryUsedGB = round2(float64(vm.Used) / gib)
		snap.MemoryTotalGB = round2(float64(vm.Total) / gib)
	} else {
		s.logger.Printf("sysinfo: memory sample failed: %v", err)
	}

	if sw, err := mem.SwapMemory(); err == nil {
		snap.SwapPercent = round1(sw.UsedPercent)
		snap.SwapUsedGB = round2(float64(sw.Used) / gib)
	}

	snap.CPUTemp = cpuTemperature()
	snap.LastUpdate = time.Now().Format("15:04:05")

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// cpuTemperature picks the main package sensor where one is labeled,
// falling back to the first sensor that reports anything. Zero when the
// host exposes no thermal data.
func cpuTemperature() float64 {
	sensors, err := host.SensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return 0
	}

	preferred := []string{"coretemp", "k10temp", "cpu_thermal"}
	for _, s := range sensors {
		for _, name := range preferred {
			if strings.Contains(s.SensorKey, name) && s.Temperature > 0 {
				return round1(s.Temperature)
			}
		}
	}
	for _, s := range sensors {
		if s.Temperature > 0 {
			return round1(s.Temperature)
		}
	}
	return 0
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
