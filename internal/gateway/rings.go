// internal/gateway/rings.go
package gateway

import (
	"fmt"
	"sync"
	"time"

	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
)

// Rings holds the gateway's bounded history: the error log and the
// latency samples feeding the rolling average. It implements
// transport.Recorder.
type Rings struct {
	mu        sync.Mutex
	errors    []string
	latencies []time.Duration
	now       func() time.Time
}

func NewRings() *Rings {
	return &Rings{now: time.Now}
}

// RecordError appends a timestamped entry, silently dropping the oldest
// once the ring is full.
func (r *Rings) RecordError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s", r.now().Format("2006-01-02 15:04:05"), msg)
	r.errors = append(r.errors, entry)
	if len(r.errors) > status.MaxErrorLogs {
		r.errors = r.errors[len(r.errors)-status.MaxErrorLogs:]
	}
}

// RecordLatency keeps the last few round-trip durations.
func (r *Rings) RecordLatency(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latencies = append(r.latencies, d)
	if len(r.latencies) > status.LatencySamples {
		r.latencies = r.latencies[len(r.latencies)-status.LatencySamples:]
	}
}

// Errors returns a copy of the buffered log, oldest first.
func (r *Rings) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// AvgLatency returns the rolling average over the kept samples and the
// sample count. Zero average when no transaction has completed yet.
func (r *Rings) AvgLatency() (time.Duration, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.latencies) == 0 {
		return 0, 0
	}
	var sum time.Duration
	for _, d := range r.latencies {
		sum += d
	}
	return sum / time.Duration(len(r.latencies)), len(r.latencies)
}
