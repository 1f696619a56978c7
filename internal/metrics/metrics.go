// Package metrics exposes Prometheus collectors for the streaming
// pipeline and serves them over HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CandlesTotal counts candles processed, by symbol and feed.
	CandlesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quant_ta",
		Name:      "candles_total",
		Help:      "Number of candles processed.",
	}, []string{"symbol", "source"})

	// ColumnValue holds the latest reading of each panel column.
	ColumnValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "quant_ta",
		Name:      "column_value",
		Help:      "Latest value of a panel column.",
	}, []string{"column"})

	// ColumnReady is 1 once a column has warmed up.
	ColumnReady = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "quant_ta",
		Name:      "column_ready",
		Help:      "Whether a panel column has warmed up (0 or 1).",
	}, []string{"column"})

	// AdvanceDuration tracks how long one panel advance takes.
	AdvanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quant_ta",
		Name:      "advance_duration_seconds",
		Help:      "Time spent advancing the panel for one candle.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 2, 20),
	})

	// AlertsTotal counts alerts fired, by severity.
	AlertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quant_ta",
		Name:      "alerts_total",
		Help:      "Number of alerts fired.",
	}, []string{"severity"})

	// FeedErrorsTotal counts feed failures, by source.
	FeedErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quant_ta",
		Name:      "feed_errors_total",
		Help:      "Number of feed errors.",
	}, []string{"source"})

	// SnapshotsStored counts snapshots written to the store.
	SnapshotsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quant_ta",
		Name:      "snapshots_stored_total",
		Help:      "Number of snapshot rows persisted.",
	})

	// BuildInfo carries version metadata as labels.
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "quant_ta",
		Name:      "build_info",
		Help:      "Build information.",
	}, []string{"version", "commit", "build_time"})
)

// SetBuildInfo records version metadata.
func SetBuildInfo(version, commit, buildTime string) {
	BuildInfo.WithLabelValues(version, commit, buildTime).Set(1)
}
