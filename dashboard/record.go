package dashboard

import (
	"math"

	"github.com/Tureright/performance-test-k6/model"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewRunRecord derives the dashboard view of one k6 summary. Classification
// uses the raw fail rate and p95, not the rounded display values.
func NewRunRecord(category, filename string, s *model.Summary, t Thresholds) model.RunRecord {
	name := model.RunNameFromFile(filename)
	failRate := s.Value(model.MetricHTTPReqFailed, model.FieldRate)
	p95 := s.Value(model.MetricHTTPReqDuration, model.FieldP95)
	return model.RunRecord{
		Name:             name,
		Category:         category,
		DurationSeconds:  int64(math.Round(s.DurationMs() / 1000)),
		RequestCount:     int64(s.Value(model.MetricHTTPReqs, model.FieldCount)),
		AvgDurationMs:    round2(s.Value(model.MetricHTTPReqDuration, model.FieldAvg)),
		P95DurationMs:    round2(p95),
		FailRatePercent:  round2(failRate * 100),
		MaxVUs:           int64(s.Value(model.MetricVUs, model.FieldMax)),
		ReportPath:       model.MakeReportPath(category, name),
		Status:           t.Classify(failRate, p95),
		FailedThresholds: s.FailedThresholds(),
	}
}
