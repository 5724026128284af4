// Package metrics exposes Prometheus instruments for dataset builds and chart rendering.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatasetBuildsTotal counts startup builds by dataset and outcome code ("OK" on success).
	DatasetBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentidash_dataset_builds_total",
			Help: "Total number of dataset builds",
		},
		[]string{"dataset", "code"},
	)

	// DatasetBuildDuration tracks load, clean and chart construction time per dataset.
	DatasetBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentidash_dataset_build_duration_seconds",
			Help:    "Duration of dataset builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"dataset"},
	)

	// DatasetRows tracks rows kept and dropped by the last clean of each dataset.
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentidash_dataset_rows",
			Help: "Rows in each dataset after cleaning",
		},
		[]string{"dataset", "state"}, // state: "kept", "dropped"
	)

	// ChartRendersTotal counts PNG renders served over HTTP.
	ChartRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentidash_chart_renders_total",
			Help: "Total number of chart PNG renders",
		},
		[]string{"dataset", "kind", "status"},
	)
)

// RecordBuild records the outcome of one dataset build
func RecordBuild(dataset, code string, kept, dropped int, d time.Duration) {
	DatasetBuildsTotal.WithLabelValues(dataset, code).Inc()
	DatasetBuildDuration.WithLabelValues(dataset).Observe(d.Seconds())
	DatasetRows.WithLabelValues(dataset, "kept").Set(float64(kept))
	DatasetRows.WithLabelValues(dataset, "dropped").Set(float64(dropped))
}

// RecordRender records one chart PNG render
func RecordRender(dataset, kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ChartRendersTotal.WithLabelValues(dataset, kind, status).Inc()
}
