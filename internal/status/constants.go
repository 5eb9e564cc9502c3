// internal/status/constants.go
package status

import "time"

// Gateway timing and capacity constants.
// These values define the wire and scheduling behavior and MUST NOT be
// configurable per request.

// ---- PROTOCOL LIMITS ----

// MaxReadQuantity is the largest number of holding registers requested in
// a single FC3 transaction. Larger windows are split into chunks.
const MaxReadQuantity = 47

// ---- RING CAPACITIES ----

// MaxErrorLogs is the capacity of the error-log ring buffer.
const MaxErrorLogs = 30

// LatencySamples is the number of round-trip samples kept for the
// rolling average.
const LatencySamples = 10

// ---- SCHEDULING ----

// SettleDelay is the fixed pause between writing a request frame and
// reading the response, giving the slave time to answer.
const SettleDelay = 50 * time.Millisecond

// Pace is the fixed pause between consecutive hardware operations.
const Pace = 100 * time.Millisecond

// IdleBackoff is the sleep applied when there is nothing to poll.
const IdleBackoff = 500 * time.Millisecond

// DequeueTimeout is how long the worker blocks on the write queue before
// falling back to polling.
const DequeueTimeout = 100 * time.Millisecond

// InterestTimeout is the idle expiry for interest entries: a range not
// read for this long stops being polled.
const InterestTimeout = 10 * time.Second
