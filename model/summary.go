package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Metric names and value fields k6 writes into the summary export.
const (
	MetricHTTPReqs        = "http_reqs"
	MetricHTTPReqDuration = "http_req_duration"
	MetricHTTPReqFailed   = "http_req_failed"
	MetricVUs             = "vus"

	FieldCount = "count"
	FieldAvg   = "avg"
	FieldP95   = "p(95)"
	FieldRate  = "rate"
	FieldMax   = "max"
)

type SummaryState struct {
	TestRunDurationMs float64 `json:"testRunDurationMs"`
}

type ThresholdResult struct {
	Ok bool `json:"ok"`
}

type SummaryMetric struct {
	Type       string                      `json:"type"`
	Contains   string                      `json:"contains"`
	Values     map[string]float64          `json:"values"`
	Thresholds map[string]*ThresholdResult `json:"thresholds,omitempty"`
}

// Summary is the document k6 hands to handleSummary. Only the parts the
// dashboard reads are modelled; everything else is ignored on decode.
type Summary struct {
	State   *SummaryState             `json:"state"`
	Metrics map[string]*SummaryMetric `json:"metrics"`
}

func ParseSummary(raw []byte) (*Summary, error) {
	var s *Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("summary is not a JSON object")
	}
	return s, nil
}

// Value returns metrics[metric].values[field], or 0 when any part of that
// path is missing. k6 drops metrics that never received a sample, so a
// missing path is a normal input.
func (s *Summary) Value(metric, field string) float64 {
	if s == nil || s.Metrics == nil {
		return 0
	}
	m, ok := s.Metrics[metric]
	if !ok || m == nil || m.Values == nil {
		return 0
	}
	return m.Values[field]
}

func (s *Summary) DurationMs() float64 {
	if s == nil || s.State == nil {
		return 0
	}
	return s.State.TestRunDurationMs
}

// FailedThresholds lists the thresholds k6 itself marked as crossed, as
// "metric: expression", sorted.
func (s *Summary) FailedThresholds() []string {
	if s == nil {
		return nil
	}
	var failed []string
	for name, m := range s.Metrics {
		if m == nil {
			continue
		}
		for expr, res := range m.Thresholds {
			if res != nil && !res.Ok {
				failed = append(failed, fmt.Sprintf("%s: %s", name, expr))
			}
		}
	}
	sort.Strings(failed)
	return failed
}
