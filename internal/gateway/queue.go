// internal/gateway/queue.go
package gateway

import (
	"sync"
	"time"
)

// WriteTask is one pending register write. Immutable once enqueued,
// consumed exactly once.
type WriteTask struct {
	Address uint16
	Value   uint16
}

// writeQueue is an unbounded FIFO with a blocking dequeue. Enqueue never
// blocks the caller; dequeue parks the worker until a task arrives or the
// timeout passes, avoiding a busy loop when idle.
type writeQueue struct {
	mu     sync.Mutex
	tasks  []WriteTask
	signal chan struct{}
}

func newWriteQueue() *writeQueue {
	return &writeQueue{signal: make(chan struct{}, 1)}
}

func (q *writeQueue) enqueue(t WriteTask) {
	q.mu.Lock()
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *writeQueue) dequeue(timeout time.Duration) (WriteTask, bool) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		q.mu.Lock()
		if len(q.tasks) > 0 {
			t := q.tasks[0]
			q.tasks = q.tasks[1:]
			q.mu.Unlock()
			return t, true
		}
		q.mu.Unlock()

		select {
		case <-q.signal:
		case <-deadline.C:
			return WriteTask{}, false
		}
	}
}

func (q *writeQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
