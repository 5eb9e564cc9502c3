// internal/status/snapshot.go
package status

// Snapshot is exactly what the status endpoint is allowed to report.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Link         LinkState
	PortOpen     bool
	AvgLatencyMs float64
	LatencyCount int
	ErrorLogs    []string
	QueueDepth   int
	CacheSize    int
	Window       *Window
	PollCount    uint64
	WriteCount   uint64
	FailureCount uint64
}

// Window is the address span the worker is currently refreshing.
type Window struct {
	Start uint16
	End   uint16
}
