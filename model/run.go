package model

import (
	"fmt"
	"strings"
)

const (
	SummarySuffix = "-summary.json"
	ReportSuffix  = "-report.html"
)

// Categories is the fixed display order of test types.
var Categories = []string{"smoke", "load", "stress", "spike", "soak"}

type Status string

const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
)

var statusIcons = map[Status]string{
	StatusPass:    "✅",
	StatusWarning: "⚠️",
	StatusFail:    "❌",
}

func (s Status) Icon() string {
	return statusIcons[s]
}

// Class is the CSS class the dashboard uses to colour the status.
func (s Status) Class() string {
	return "status-" + strings.ToLower(string(s))
}

type RunRecord struct {
	Name             string   `json:"name" yaml:"name"`
	Category         string   `json:"category" yaml:"category"`
	DurationSeconds  int64    `json:"duration_seconds" yaml:"duration_seconds"`
	RequestCount     int64    `json:"request_count" yaml:"request_count"`
	AvgDurationMs    float64  `json:"avg_duration_ms" yaml:"avg_duration_ms"`
	P95DurationMs    float64  `json:"p95_duration_ms" yaml:"p95_duration_ms"`
	FailRatePercent  float64  `json:"fail_rate_percent" yaml:"fail_rate_percent"`
	MaxVUs           int64    `json:"max_vus" yaml:"max_vus"`
	ReportPath       string   `json:"report_path" yaml:"report_path"`
	Status           Status   `json:"status" yaml:"status"`
	FailedThresholds []string `json:"failed_thresholds,omitempty" yaml:"failed_thresholds,omitempty"`
}

type Totals struct {
	Total  int `json:"total" yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
	Warned int `json:"warned" yaml:"warned"`
	Failed int `json:"failed" yaml:"failed"`
}

func CountStatuses(runs []RunRecord) Totals {
	t := Totals{Total: len(runs)}
	for _, r := range runs {
		switch r.Status {
		case StatusPass:
			t.Passed++
		case StatusWarning:
			t.Warned++
		default:
			t.Failed++
		}
	}
	return t
}

func IsSummaryFile(filename string) bool {
	return strings.HasSuffix(filename, SummarySuffix)
}

func RunNameFromFile(filename string) string {
	return strings.TrimSuffix(filename, SummarySuffix)
}

// MakeReportPath is the link to the HTML report k6 writes next to the
// summary. Whether the file exists is not checked.
func MakeReportPath(category, name string) string {
	return fmt.Sprintf("%s/%s%s", category, name, ReportSuffix)
}

// RunList is the machine-readable listing of a report.
type RunList struct {
	Runs   []RunRecord `json:"runs" yaml:"runs"`
	Totals Totals      `json:"totals" yaml:"totals"`
}

func NewRunList(runs []RunRecord) *RunList {
	if runs == nil {
		runs = []RunRecord{}
	}
	return &RunList{Runs: runs, Totals: CountStatuses(runs)}
}
