// Package metrics provides Prometheus metrics for treeseq
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for treeseq
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Table metrics
	TableRowsTotal     *prometheus.GaugeVec
	MetadataReadsTotal *prometheus.CounterVec
	MetadataBytesRead  *prometheus.HistogramVec

	// Store metrics
	StoreLoadsTotal   *prometheus.CounterVec
	StoreLoadDuration prometheus.Histogram
	StoreFileBytes    prometheus.Gauge

	// Server metrics
	ServerUptimeSeconds prometheus.Gauge
	ServerStartTime     time.Time
}

// NewMetrics creates and registers all metrics on the default registerer
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics on the given registerer
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treeseq_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "treeseq_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "treeseq_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	m.TableRowsTotal = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "treeseq_table_rows_total",
			Help: "Number of rows in each table of the loaded collection",
		},
		[]string{"table"},
	)

	m.MetadataReadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treeseq_metadata_reads_total",
			Help: "Row metadata reads by table and outcome",
		},
		[]string{"table", "outcome"},
	)

	m.MetadataBytesRead = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "treeseq_metadata_bytes_read",
			Help:    "Size of metadata payloads served, in bytes",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"table"},
	)

	m.StoreLoadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treeseq_store_loads_total",
			Help: "Total number of file loads",
		},
		[]string{"status"},
	)

	m.StoreLoadDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "treeseq_store_load_duration_seconds",
			Help:    "Duration of file loads in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	m.StoreFileBytes = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "treeseq_store_file_bytes",
			Help: "Size of the loaded file in bytes",
		},
	)

	m.ServerUptimeSeconds = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "treeseq_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
	)

	go m.updateUptime()

	return m
}

// updateUptime periodically updates the server uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.ServerUptimeSeconds.Set(time.Since(m.ServerStartTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request with its status
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordMetadataRead records one row metadata read and its outcome
// ("present", "absent", or "missing_row")
func (m *Metrics) RecordMetadataRead(table, outcome string, size int) {
	m.MetadataReadsTotal.WithLabelValues(table, outcome).Inc()
	if outcome == "present" {
		m.MetadataBytesRead.WithLabelValues(table).Observe(float64(size))
	}
}

// RecordStoreLoad records a file load attempt
func (m *Metrics) RecordStoreLoad(status string, duration time.Duration, fileBytes int64) {
	m.StoreLoadsTotal.WithLabelValues(status).Inc()
	m.StoreLoadDuration.Observe(duration.Seconds())
	if fileBytes > 0 {
		m.StoreFileBytes.Set(float64(fileBytes))
	}
}

// UpdateTableRows sets the per-table row count gauges
func (m *Metrics) UpdateTableRows(counts map[string]int) {
	for table, n := range counts {
		m.TableRowsTotal.WithLabelValues(table).Set(float64(n))
	}
}
