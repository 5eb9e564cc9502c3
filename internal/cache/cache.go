// internal/cache/cache.go

// Package cache keeps the last-known-good value of every holding register
// the worker has read. API callers read from here instead of blocking on
// the serial line.
package cache

import "sync"

// Cache is a guarded map from register address to value. Addresses never
// successfully read report zero.
type Cache struct {
	mu   sync.RWMutex
	regs map[uint16]uint16
}

func New() *Cache {
	return &Cache{regs: make(map[uint16]uint16)}
}

// Get returns one value per address in [start, start+quantity). It never
// blocks on hardware.
func (c *Cache) Get(start uint16, quantity int) []uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]uint16, quantity)
	for i := 0; i < quantity; i++ {
		out[i] = c.regs[start+uint16(i)]
	}
	return out
}

// Put overwrites the entries for start..start+len(values)-1. Only the
// worker calls this, and only after a successful read transaction.
func (c *Cache) Put(start uint16, values []uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, v := range values {
		c.regs[start+uint16(i)] = v
	}
}

// Len reports how many registers have been populated.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.regs)
}
