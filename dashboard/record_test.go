package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tureright/performance-test-k6/model"
)

func TestNewRunRecord(t *testing.T) {
	s, err := model.ParseSummary(makeSummary(15500, 120, 123.456, 456.789, 0.01234, 5))
	require.Nil(t, err)
	r := NewRunRecord("load", "checkout-flow-summary.json", s, DefaultThresholds)
	assert.Equal(t, model.RunRecord{
		Name:            "checkout-flow",
		Category:        "load",
		DurationSeconds: 16,
		RequestCount:    120,
		AvgDurationMs:   123.46,
		P95DurationMs:   456.79,
		FailRatePercent: 1.23,
		MaxVUs:          5,
		ReportPath:      "load/checkout-flow-report.html",
		Status:          model.StatusPass,
	}, r)
}

func TestNewRunRecordWithoutMetrics(t *testing.T) {
	s, err := model.ParseSummary([]byte(`{"state": {"testRunDurationMs": 1499}}`))
	require.Nil(t, err)
	r := NewRunRecord("smoke", "pizza-smoke-summary.json", s, DefaultThresholds)
	assert.Equal(t, "pizza-smoke", r.Name)
	assert.Equal(t, int64(1), r.DurationSeconds)
	assert.Equal(t, int64(0), r.RequestCount)
	assert.Equal(t, float64(0), r.AvgDurationMs)
	assert.Equal(t, float64(0), r.P95DurationMs)
	assert.Equal(t, float64(0), r.FailRatePercent)
	assert.Equal(t, int64(0), r.MaxVUs)
	assert.Equal(t, model.StatusPass, r.Status)
}

func TestNewRunRecordClassifiesUnroundedValues(t *testing.T) {
	// p95 1999.999 shows as 2000.00 but is still below the cutoff
	s, err := model.ParseSummary(makeSummary(1000, 1, 1, 1999.999, 0, 1))
	require.Nil(t, err)
	r := NewRunRecord("load", "edge-summary.json", s, DefaultThresholds)
	assert.Equal(t, 2000.0, r.P95DurationMs)
	assert.Equal(t, model.StatusPass, r.Status)
}

func TestNewRunRecordKeepsFailedThresholds(t *testing.T) {
	s, err := model.ParseSummary([]byte(`{"metrics": {"http_req_duration": {"values": {"p(95)": 700},
		"thresholds": {"p(95)<500": {"ok": false}, "p(99)<1500": {"ok": true}}}}}`))
	require.Nil(t, err)
	r := NewRunRecord("smoke", "ratings-smoke-summary.json", s, DefaultThresholds)
	assert.Equal(t, []string{"http_req_duration: p(95)<500"}, r.FailedThresholds)
	assert.Equal(t, model.StatusPass, r.Status)
}
