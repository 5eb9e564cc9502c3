// internal/gateway/gateway.go

// Package gateway owns the shared state of the Modbus gateway: register
// cache, interest tracker, write queue, status rings, and the single
// background worker that talks to the hardware. One Gateway is
// constructed at startup and handed to the API layer; there are no
// package-level singletons.
package gateway

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/BKVdevi/halow-jet-webconsole/internal/cache"
	"github.com/BKVdevi/halow-jet-webconsole/internal/frame"
	"github.com/BKVdevi/halow-jet-webconsole/internal/interest"
	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
)

// Transactor is the slice of the transport the worker needs.
type Transactor interface {
	Transact(req []byte) (frame.Response, error)
	State() status.LinkState
	PortOpen() bool
}

// Options tune the worker. Zero values fall back to the protocol
// defaults from the status package.
type Options struct {
	Slave           byte
	Pace            time.Duration
	IdleBackoff     time.Duration
	DequeueTimeout  time.Duration
	InterestTimeout time.Duration
	MaxChunk        int

	// DisjointRanges polls each live interest range separately instead
	// of one min-max spanning window.
	DisjointRanges bool

	Logger *log.Logger
}

func (o *Options) defaults() {
	if o.Pace == 0 {
		o.Pace = status.Pace
	}
	if o.IdleBackoff == 0 {
		o.IdleBackoff = status.IdleBackoff
	}
	if o.DequeueTimeout == 0 {
		o.DequeueTimeout = status.DequeueTimeout
	}
	if o.InterestTimeout == 0 {
		o.InterestTimeout = status.InterestTimeout
	}
	if o.MaxChunk == 0 {
		o.MaxChunk = status.MaxReadQuantity
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Gateway is the explicit owner of link, cache, tracker, queue and logs.
type Gateway struct {
	opts  Options
	tr    Transactor
	cache *cache.Cache
	track *interest.Tracker
	queue *writeQueue
	rings *Rings

	polls    atomic.Uint64
	writes   atomic.Uint64
	failures atomic.Uint64

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a gateway around an already-constructed transport. The
// rings passed in must be the same ones the transport records into.
func New(tr Transactor, rings *Rings, opts Options) *Gateway {
	opts.defaults()
	return &Gateway{
		opts:  opts,
		tr:    tr,
		cache: cache.New(),
		track: interest.NewTracker(opts.InterestTimeout),
		queue: newWriteQueue(),
		rings: rings,
	}
}

// ReadRegisters serves quantity values starting at addr straight from
// the cache and registers interest in the range as a side effect. It
// never touches the hardware.
func (g *Gateway) ReadRegisters(addr uint16, quantity int) []uint16 {
	end := addr + uint16(quantity) - 1
	g.track.Touch(addr, end)
	return g.cache.Get(addr, quantity)
}

// WriteRegister queues a single-register write and returns immediately.
// There is no confirmation that the hardware received it, and the cache
// is not updated until a later poll observes the new value.
func (g *Gateway) WriteRegister(addr, value uint16) {
	g.queue.enqueue(WriteTask{Address: addr, Value: value})
}

// Snapshot assembles the externally visible state.
func (g *Gateway) Snapshot() status.Snapshot {
	avg, count := g.rings.AvgLatency()

	snap := status.Snapshot{
		Link:         g.tr.State(),
		PortOpen:     g.tr.PortOpen(),
		AvgLatencyMs: float64(avg.Microseconds()) / 1000.0,
		LatencyCount: count,
		ErrorLogs:    g.rings.Errors(),
		QueueDepth:   g.queue.depth(),
		CacheSize:    g.cache.Len(),
		PollCount:    g.polls.Load(),
		WriteCount:   g.writes.Load(),
		FailureCount: g.failures.Load(),
	}
	if w, ok := g.track.Window(); ok {
		snap.Window = &status.Window{Start: w.Start, End: w.End}
	}
	return snap
}

// Start launches the background worker.
func (g *Gateway) Start(ctx context.Context) {
	ctx, g.cancel = context.WithCancel(ctx)
	g.done = make(chan struct{})
	go func() {
		defer close(g.done)
		g.run(ctx)
	}()
}

// Stop cancels the worker and waits for it with a bounded timeout.
func (g *Gateway) Stop(timeout time.Duration) error {
	if g.cancel == nil {
		return nil
	}
	g.cancel()
	select {
	case <-g.done:
		return nil
	case <-time.After(timeout):
		return errors.New("gateway: worker did not stop in time")
	}
}
