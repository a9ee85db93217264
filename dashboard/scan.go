package dashboard

import (
	"io/fs"
	"path"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/Tureright/performance-test-k6/model"
)

type categoryScan struct {
	runs    []model.RunRecord
	skipped []error
}

// categoryExists reports whether the category has a readable directory.
// A category that was never run simply has no directory.
func categoryExists(fsys fs.FS, category string) bool {
	fi, err := fs.Stat(fsys, category)
	if err != nil {
		log.WithField("category", category).Debug("no results directory for category")
		return false
	}
	return fi.IsDir()
}

func summaryFiles(fsys fs.FS, category string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, category)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !model.IsSummaryFile(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

func readRunRecord(fsys fs.FS, category, file string, t Thresholds) (model.RunRecord, error) {
	raw, err := fs.ReadFile(fsys, path.Join(category, file))
	if err != nil {
		return model.RunRecord{}, &model.SummaryError{Category: category, File: file, Err: err}
	}
	s, err := model.ParseSummary(raw)
	if err != nil {
		return model.RunRecord{}, &model.SummaryError{Category: category, File: file, Err: err}
	}
	return NewRunRecord(category, file, s, t), nil
}

func scanCategory(fsys fs.FS, category string, t Thresholds) categoryScan {
	var cs categoryScan
	if !categoryExists(fsys, category) {
		return cs
	}
	files, err := summaryFiles(fsys, category)
	if err != nil {
		log.WithField("category", category).Warnf("cannot list results directory: %v", err)
		return cs
	}
	for _, f := range files {
		r, err := readRunRecord(fsys, category, f, t)
		if err != nil {
			log.WithField("category", category).Warnf("skipping summary: %v", err)
			cs.skipped = append(cs.skipped, err)
			continue
		}
		cs.runs = append(cs.runs, r)
	}
	sort.SliceStable(cs.runs, func(i, j int) bool {
		return cs.runs[i].Name < cs.runs[j].Name
	})
	return cs
}
