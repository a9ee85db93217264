package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Tureright/performance-test-k6/model"
)

// k6 writes the summary and the report back to back, wait for both.
const watchDebounce = 500 * time.Millisecond

// Watch generates the dashboard once, then again every time a summary file
// under the results directory changes, until ctx is cancelled. Generation
// errors are logged and the watch carries on.
func (a *App) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := a.Config.ResultsDir
	// nothing has run yet, watch the empty tree
	if err := os.MkdirAll(root, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", root)
	}
	if err := w.Add(root); err != nil {
		return errors.Wrapf(err, "watching %s", root)
	}
	for _, c := range a.Config.Categories {
		// categories that were never run have no directory yet
		if err := w.Add(filepath.Join(root, c)); err != nil {
			log.WithField("category", c).Debug("category directory not watched yet")
		}
	}

	regenerate := func() {
		if _, err := a.Generate(ctx); err != nil {
			log.Error(err)
		}
	}
	regenerate()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			base := filepath.Base(ev.Name)
			if ev.Has(fsnotify.Create) && filepath.Dir(ev.Name) == filepath.Clean(root) && model.InCategories(a.Config.Categories, base) {
				if err := w.Add(ev.Name); err != nil {
					log.Warn(err)
				}
				fire = time.After(watchDebounce)
				continue
			}
			if model.IsSummaryFile(base) {
				fire = time.After(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn(err)
		case <-fire:
			fire = nil
			regenerate()
		}
	}
}
