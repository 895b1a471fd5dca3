package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"check-snmp-lsi-raid/pkg/types"
)

// Metrics holds the gauges describing one check run
type Metrics struct {
	registry      *prometheus.Registry
	CheckStatus   *prometheus.GaugeVec
	DiskValue     *prometheus.GaugeVec
	DisksReported *prometheus.GaugeVec
	CheckDuration *prometheus.GaugeVec
}

// New creates the metrics on their own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lsi_raid_check_status",
				Help: "Check verdict (0=ok, 1=warning, 2=critical, 3=unknown)",
			},
			[]string{"statistic"},
		),
		DiskValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lsi_raid_disk_value",
				Help: "Raw value reported by the agent for a disk",
			},
			[]string{"statistic", "disk"},
		),
		DisksReported: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lsi_raid_disks_reported",
				Help: "Number of disks reported by the agent",
			},
			[]string{"statistic"},
		),
		CheckDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lsi_raid_check_duration_seconds",
				Help: "Time taken by the check run",
			},
			[]string{"statistic"},
		),
	}

	m.registry.MustRegister(
		m.CheckStatus,
		m.DiskValue,
		m.DisksReported,
		m.CheckDuration,
	)

	return m
}

// Record stores the outcome of a run. results may be nil when the run
// failed before any data was collected.
func (m *Metrics) Record(stat string, status types.Status, results *types.ResultSet, elapsed time.Duration) {
	m.CheckStatus.WithLabelValues(stat).Set(float64(status))
	m.CheckDuration.WithLabelValues(stat).Set(elapsed.Seconds())

	if results == nil {
		return
	}
	m.DisksReported.WithLabelValues(stat).Set(float64(results.Len()))
	for _, r := range results.Readings() {
		m.DiskValue.WithLabelValues(stat, strconv.Itoa(r.Index)).Set(float64(r.Value))
	}
}

// WriteTextfile writes the metrics in the node_exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Reset clears all metrics so disks missing from the next run are not
// reported with stale values
func (m *Metrics) Reset() {
	m.CheckStatus.Reset()
	m.DiskValue.Reset()
	m.DisksReported.Reset()
	m.CheckDuration.Reset()
}
