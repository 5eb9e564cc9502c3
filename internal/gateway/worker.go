// internal/gateway/worker.go
package gateway

import (
	"context"
	"time"

	"github.com/BKVdevi/halow-jet-webconsole/internal/frame"
	"github.com/BKVdevi/halow-jet-webconsole/internal/interest"
)

// run is the single scheduling loop. Queued writes win over polling:
// they are checked first on every iteration, so a write enqueued now is
// on the wire before any read chunk attempted after it. Individual
// transaction failures degrade status and land in the error log but
// never stop the loop; a dead link is redialed at the pace of the loop
// itself.
func (g *Gateway) run(ctx context.Context) {
	for ctx.Err() == nil {
		if task, ok := g.queue.dequeue(g.opts.DequeueTimeout); ok {
			g.performWrite(task)
			g.pause(ctx, g.opts.Pace)
			continue
		}

		windows := g.pollWindows()
		if len(windows) == 0 {
			g.pause(ctx, g.opts.IdleBackoff)
			continue
		}

		for _, w := range windows {
			g.pollWindow(ctx, w)
		}
	}
}

func (g *Gateway) pollWindows() []interest.Range {
	if g.opts.DisjointRanges {
		return g.track.Windows()
	}
	if w, ok := g.track.Window(); ok {
		return []interest.Range{w}
	}
	return nil
}

// pollWindow refreshes one window in ascending chunks of at most
// MaxChunk registers. A failed chunk is logged and skipped; the rest of
// the window is still attempted.
func (g *Gateway) pollWindow(ctx context.Context, w interest.Range) {
	start := uint32(w.Start)
	for start <= uint32(w.End) && ctx.Err() == nil {
		qty := uint32(w.End) - start + 1
		if qty > uint32(g.opts.MaxChunk) {
			qty = uint32(g.opts.MaxChunk)
		}

		g.performRead(uint16(start), uint16(qty))
		g.pause(ctx, g.opts.Pace)

		start += qty
	}
}

func (g *Gateway) performRead(start, quantity uint16) {
	res, err := g.tr.Transact(frame.EncodeRead(g.opts.Slave, start, quantity))
	if err != nil {
		g.failures.Add(1)
		g.opts.Logger.Printf("poll failed: addr=%d qty=%d: %v", start, quantity, err)
		return
	}

	g.polls.Add(1)
	if len(res.Registers) > 0 {
		g.cache.Put(start, res.Registers)
	}
}

// performWrite pushes one queued task to the hardware. Failed writes are
// dropped, not retried: the caller observed only the enqueue ack and the
// error log tells the rest.
func (g *Gateway) performWrite(task WriteTask) {
	_, err := g.tr.Transact(frame.EncodeWrite(g.opts.Slave, task.Address, task.Value))
	if err != nil {
		g.failures.Add(1)
		g.opts.Logger.Printf("write failed: addr=%d value=%d: %v", task.Address, task.Value, err)
		return
	}

	g.writes.Add(1)
	g.opts.Logger.Printf("write ok: addr=%d value=%d", task.Address, task.Value)
}

func (g *Gateway) pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
