// internal/metrics/collector.go

// Package metrics exposes the gateway state as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
)

// Source is anything that can report a gateway snapshot.
type Source interface {
	Snapshot() status.Snapshot
}

// Collector implements prometheus.Collector over the gateway snapshot.
// Collection is cheap: the snapshot is assembled from in-memory state
// and never touches the serial line.
type Collector struct {
	src Source

	linkStateDesc  *prometheus.Desc
	portOpenDesc   *prometheus.Desc
	latencyDesc    *prometheus.Desc
	queueDepthDesc *prometheus.Desc
	cacheSizeDesc  *prometheus.Desc
	errorLogDesc   *prometheus.Desc
	pollsDesc      *prometheus.Desc
	writesDesc     *prometheus.Desc
	failuresDesc   *prometheus.Desc
}

func NewCollector(src Source) *Collector {
	return &Collector{
		src: src,

		linkStateDesc: prometheus.NewDesc(
			"halowjet_link_state",
			"Modbus link state (0=offline, 1=online, 2=transport error)",
			nil,
			nil,
		),
		portOpenDesc: prometheus.NewDesc(
			"halowjet_port_open",
			"Whether the serial port is currently open",
			nil,
			nil,
		),
		latencyDesc: prometheus.NewDesc(
			"halowjet_avg_latency_seconds",
			"Rolling average transaction round-trip over the last samples",
			nil,
			nil,
		),
		queueDepthDesc: prometheus.NewDesc(
			"halowjet_write_queue_depth",
			"Number of pending write tasks",
			nil,
			nil,
		),
		cacheSizeDesc: prometheus.NewDesc(
			"halowjet_cache_registers",
			"Number of registers with a known value",
			nil,
			nil,
		),
		errorLogDesc: prometheus.NewDesc(
			"halowjet_error_log_entries",
			"Entries currently held in the error-log ring",
			nil,
			nil,
		),
		pollsDesc: prometheus.NewDesc(
			"halowjet_polls_total",
			"Successful polling read transactions",
			nil,
			nil,
		),
		writesDesc: prometheus.NewDesc(
			"halowjet_writes_total",
			"Successful write transactions",
			nil,
			nil,
		),
		failuresDesc: prometheus.NewDesc(
			"halowjet_transaction_failures_total",
			"Failed transactions of any kind",
			nil,
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.linkStateDesc
	ch <- c.portOpenDesc
	ch <- c.latencyDesc
	ch <- c.queueDepthDesc
	ch <- c.cacheSizeDesc
	ch <- c.errorLogDesc
	ch <- c.pollsDesc
	ch <- c.writesDesc
	ch <- c.failuresDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.src.Snapshot()

	portOpen := 0.0
	if snap.PortOpen {
		portOpen = 1.0
	}

	ch <- prometheus.MustNewConstMetric(
		c.linkStateDesc, prometheus.GaugeValue, float64(snap.Link))
	ch <- prometheus.MustNewConstMetric(
		c.portOpenDesc, prometheus.GaugeValue, portOpen)
	ch <- prometheus.MustNewConstMetric(
		c.latencyDesc, prometheus.GaugeValue, snap.AvgLatencyMs/1000.0)
	ch <- prometheus.MustNewConstMetric(
		c.queueDepthDesc, prometheus.GaugeValue, float64(snap.QueueDepth))
	ch <- prometheus.MustNewConstMetric(
		c.cacheSizeDesc, prometheus.GaugeValue, float64(snap.CacheSize))
	ch <- prometheus.MustNewConstMetric(
		c.errorLogDesc, prometheus.GaugeValue, float64(len(snap.ErrorLogs)))
	ch <- prometheus.MustNewConstMetric(
		c.pollsDesc, prometheus.CounterValue, float64(snap.PollCount))
	ch <- prometheus.MustNewConstMetric(
		c.writesDesc, prometheus.CounterValue, float64(snap.WriteCount))
	ch <- prometheus.MustNewConstMetric(
		c.failuresDesc, prometheus.CounterValue, float64(snap.FailureCount))
}
