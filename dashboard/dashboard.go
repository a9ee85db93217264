package dashboard

import (
	"context"
	"io/fs"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Tureright/performance-test-k6/model"
)

type Dashboard struct {
	// FS is rooted at the results directory.
	FS         fs.FS
	Categories []string
	Thresholds Thresholds
	// Strict turns skipped summary files into an error.
	Strict bool
	// Clock stamps the report. Tests pin it to get reproducible output.
	Clock func() time.Time
}

func New(fsys fs.FS) *Dashboard {
	return &Dashboard{
		FS:         fsys,
		Categories: model.Categories,
		Thresholds: DefaultThresholds,
		Clock:      time.Now,
	}
}

// FixedClock returns a clock that always reads t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type Section struct {
	Category string
	Runs     []model.RunRecord
}

type Report struct {
	GeneratedAt time.Time
	Categories  []string
	Runs        []model.RunRecord
	Totals      model.Totals
	// Skipped holds one error per summary file that was left out.
	Skipped []error
}

func (r *Report) ByCategory(category string) []model.RunRecord {
	var runs []model.RunRecord
	for _, run := range r.Runs {
		if run.Category == category {
			runs = append(runs, run)
		}
	}
	return runs
}

// Sections returns the categories that have at least one run, in display
// order.
func (r *Report) Sections() []Section {
	var sections []Section
	for _, c := range r.Categories {
		runs := r.ByCategory(c)
		if len(runs) == 0 {
			continue
		}
		sections = append(sections, Section{Category: c, Runs: runs})
	}
	return sections
}

func checkDuplicateCategories(categories []string) error {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if seen[c] {
			return errors.Errorf("category %s listed twice", c)
		}
		seen[c] = true
	}
	return nil
}

// Collect reads every category of the results tree and classifies each run.
// Categories are scanned concurrently but land in the report in display
// order. Missing directories and broken files never fail the collection
// unless Strict is set.
func (d *Dashboard) Collect(ctx context.Context) (*Report, error) {
	if err := d.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if err := checkDuplicateCategories(d.Categories); err != nil {
		return nil, err
	}
	scans := make([]categoryScan, len(d.Categories))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range d.Categories {
		i, c := i, c // per-iteration copies (go1.22 loopvar semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scans[i] = scanCategory(d.FS, c, d.Thresholds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "collecting results")
	}

	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	report := &Report{
		GeneratedAt: clock(),
		Categories:  d.Categories,
	}
	for _, s := range scans {
		report.Runs = append(report.Runs, s.runs...)
		report.Skipped = append(report.Skipped, s.skipped...)
	}
	report.Totals = model.CountStatuses(report.Runs)
	ObserveReport(report)

	if d.Strict && len(report.Skipped) > 0 {
		var result *multierror.Error
		for _, err := range report.Skipped {
			result = multierror.Append(result, err)
		}
		return report, errors.Wrap(result.ErrorOrNil(), "strict mode")
	}
	return report, nil
}
