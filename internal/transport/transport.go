// internal/transport/transport.go

// Package transport serializes access to the serial link. At most one
// transaction is in flight at any time; all reconnect handling lives at
// the top of the transaction path.
package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/BKVdevi/halow-jet-webconsole/internal/frame"
	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
)

// maxFrameSize bounds a single RTU response read.
const maxFrameSize = 256

// Recorder receives transaction outcomes. The gateway's ring buffers
// implement it.
type Recorder interface {
	RecordLatency(d time.Duration)
	RecordError(msg string)
}

// Transport owns the Link exclusively and maps its failures to the link
// state machine.
type Transport struct {
	mu     sync.Mutex // covers the whole transaction
	link   *Link
	settle time.Duration
	rec    Recorder

	stateMu sync.Mutex
	state   status.LinkState
}

func New(link *Link, settle time.Duration, rec Recorder) *Transport {
	return &Transport{
		link:   link,
		settle: settle,
		rec:    rec,
		state:  status.Offline,
	}
}

// State returns the current link state.
func (t *Transport) State() status.LinkState {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	return t.state
}

// PortOpen reports whether the serial connection exists. Safe to call
// while a transaction is running.
func (t *Transport) PortOpen() bool {
	return t.link.IsOpen()
}

func (t *Transport) setState(s status.LinkState) {
	t.stateMu.Lock()
	t.state = s
	t.stateMu.Unlock()
}

// Close shuts the link down and marks it offline.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setState(status.Offline)
	return t.link.Close()
}

// Transact sends one request frame and returns the decoded response.
//
// The mutex covers ensure-open, write, the fixed settle delay, the
// blocking read and the latency sample, so two transactions can never
// overlap on the wire. Failures are not retried here; the worker retries
// on its own schedule.
//
// I/O failures close the link and set the state to TransportError. A
// decode failure also degrades the state but leaves the link open: the
// frame is corrupt data, not a dead line.
func (t *Transport) Transact(req []byte) (frame.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.link.IsOpen() {
		if err := t.link.Open(); err != nil {
			t.setState(status.TransportError)
			t.rec.RecordError(fmt.Sprintf("open failed: %v", err))
			return frame.Response{}, fmt.Errorf("transport: open: %w", err)
		}
	}

	start := time.Now()

	if err := t.link.write(req); err != nil {
		return frame.Response{}, t.ioFailure("write", err)
	}

	// Give the slave time to answer before the blocking read.
	time.Sleep(t.settle)

	buf := make([]byte, maxFrameSize)
	n, err := t.link.read(buf)
	if err != nil {
		return frame.Response{}, t.ioFailure("read", err)
	}

	t.rec.RecordLatency(time.Since(start))

	res, err := frame.Decode(buf[:n])
	if err != nil {
		t.setState(status.TransportError)
		t.rec.RecordError(fmt.Sprintf("bad response: %v", err))
		return frame.Response{}, fmt.Errorf("transport: %w", err)
	}

	t.setState(status.Online)
	return res, nil
}

func (t *Transport) ioFailure(op string, err error) error {
	t.link.Close()
	t.setState(status.TransportError)
	t.rec.RecordError(fmt.Sprintf("serial %s failed: %v", op, err))
	return fmt.Errorf("transport: %s: %w", op, err)
}
