package ui

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/Tureright/performance-test-k6/dashboard"
	"github.com/Tureright/performance-test-k6/model"
)

const (
	DashboardTitle  = "🚀 K6 Performance Test Dashboard"
	TimestampFormat = "2006-01-02 15:04:05 MST"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type DashboardPage struct {
	Title       string
	GeneratedAt string
	Totals      model.Totals
	Sections    []dashboard.Section
	// ReportPrefix is put in front of every run's report path. Empty for the
	// static file, which sits next to the category directories.
	ReportPrefix string
}

func NewDashboardPage(r *dashboard.Report, reportPrefix string) *DashboardPage {
	return &DashboardPage{
		Title:        DashboardTitle,
		GeneratedAt:  r.GeneratedAt.Format(TimestampFormat),
		Totals:       r.Totals,
		Sections:     r.Sections(),
		ReportPrefix: reportPrefix,
	}
}

// Render writes the dashboard document. It does no I/O besides writing to w.
func Render(w io.Writer, page *DashboardPage) error {
	return tmpl.ExecuteTemplate(w, "dashboard.html", page)
}

func RenderReport(r *dashboard.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, NewDashboardPage(r, "")); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
