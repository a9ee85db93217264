package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Number of runs per category and status from the last aggregation.
	RunsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "k6dash",
		Name:      "runs",
		Help:      "Runs found in the results directory by category and status",
	}, []string{"category", "status"})

	// p95 cannot be aggregated across runs, so it is kept per run.
	RunP95Gauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "k6dash",
		Name:      "run_p95_ms",
		Help:      "95th percentile request duration of a run in milliseconds",
	}, []string{"category", "name"})

	RunFailRateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "k6dash",
		Name:      "run_fail_rate",
		Help:      "Failed request percentage of a run",
	}, []string{"category", "name"})

	SkippedFilesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "k6dash",
		Name:      "skipped_files",
		Help:      "Summary files left out of the last aggregation",
	})
)
