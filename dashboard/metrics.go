package dashboard

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Tureright/performance-test-k6/config"
	"github.com/Tureright/performance-test-k6/model"
)

type runLabels struct {
	category, name string
}

var (
	observeMu sync.Mutex
	// series exported by the previous ObserveReport
	observedRuns       = map[runLabels]bool{}
	observedCategories = map[string]bool{}
)

var statuses = []model.Status{model.StatusPass, model.StatusWarning, model.StatusFail}

// ObserveReport publishes the report to the prometheus collectors. Series
// are overwritten in place and only the ones gone from the report are
// deleted, so a concurrent scrape never sees a half-filled set.
func ObserveReport(r *Report) {
	observeMu.Lock()
	defer observeMu.Unlock()

	counts := make(map[string]map[model.Status]int, len(r.Categories))
	for _, c := range r.Categories {
		counts[c] = map[model.Status]int{}
	}
	runs := make(map[runLabels]bool, len(r.Runs))
	for _, run := range r.Runs {
		if counts[run.Category] == nil {
			counts[run.Category] = map[model.Status]int{}
		}
		counts[run.Category][run.Status]++
		l := runLabels{run.Category, run.Name}
		runs[l] = true
		config.RunP95Gauge.WithLabelValues(l.category, l.name).Set(run.P95DurationMs)
		config.RunFailRateGauge.WithLabelValues(l.category, l.name).Set(run.FailRatePercent)
	}
	for c, byStatus := range counts {
		for _, s := range statuses {
			config.RunsGauge.WithLabelValues(c, string(s)).Set(float64(byStatus[s]))
		}
	}
	config.SkippedFilesGauge.Set(float64(len(r.Skipped)))

	for l := range observedRuns {
		if !runs[l] {
			config.RunP95Gauge.DeleteLabelValues(l.category, l.name)
			config.RunFailRateGauge.DeleteLabelValues(l.category, l.name)
		}
	}
	for c := range observedCategories {
		if _, ok := counts[c]; !ok {
			for _, s := range statuses {
				config.RunsGauge.DeleteLabelValues(c, string(s))
			}
		}
	}
	observedRuns = runs
	observedCategories = make(map[string]bool, len(counts))
	for c := range counts {
		observedCategories[c] = true
	}
}

// PushMetrics sends the dashboard collectors to a Pushgateway under the
// k6dash job, replacing whatever the previous push left there.
func PushMetrics(gatewayUrl string) error {
	err := push.New(gatewayUrl, "k6dash").
		Collector(config.RunsGauge).
		Collector(config.RunP95Gauge).
		Collector(config.RunFailRateGauge).
		Collector(config.SkippedFilesGauge).
		Push()
	return errors.Wrapf(err, "pushing metrics to %s", gatewayUrl)
}
