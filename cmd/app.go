package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Tureright/performance-test-k6/config"
	"github.com/Tureright/performance-test-k6/dashboard"
	"github.com/Tureright/performance-test-k6/object_storage"
	"github.com/Tureright/performance-test-k6/ui"
	"github.com/Tureright/performance-test-k6/utils"
)

type App struct {
	// ConfigFile is the optional --config path.
	ConfigFile string
	Config     *config.DashboardConfig
	// Out receives user-facing output. Tests swap it for a buffer.
	Out io.Writer
	// Clock stamps generated dashboards.
	Clock func() time.Time

	v *viper.Viper
}

func New() *App {
	return &App{
		Out:   os.Stdout,
		Clock: time.Now,
		v:     viper.New(),
	}
}

func (a *App) loadConfig() error {
	c, err := config.LoadConfig(a.v, a.ConfigFile)
	if err != nil {
		return err
	}
	if err := config.SetupLogging(c); err != nil {
		return err
	}
	a.Config = c
	return nil
}

func (a *App) thresholds() dashboard.Thresholds {
	t := a.Config.Thresholds
	if t == nil {
		return dashboard.DefaultThresholds
	}
	return dashboard.Thresholds{
		PassFailRate: t.PassFailRate,
		PassP95Ms:    t.PassP95Ms,
		WarnFailRate: t.WarnFailRate,
		WarnP95Ms:    t.WarnP95Ms,
	}
}

func (a *App) newDashboard() (*dashboard.Dashboard, error) {
	d := dashboard.New(os.DirFS(a.Config.ResultsDir))
	if len(a.Config.Categories) > 0 {
		d.Categories = a.Config.Categories
	}
	d.Thresholds = a.thresholds()
	d.Strict = a.Config.Strict
	d.Clock = a.Clock
	if err := d.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (a *App) isRemoteStorage() bool {
	p := a.Config.ObjectStorage.Provider
	return p != "" && p != "local"
}

// Generate collects the results tree, renders the dashboard and publishes
// it. Nothing is written unless rendering succeeded.
func (a *App) Generate(ctx context.Context) (string, error) {
	d, err := a.newDashboard()
	if err != nil {
		return "", err
	}
	report, err := d.Collect(ctx)
	if err != nil {
		return "", err
	}
	html, err := ui.RenderReport(report)
	if err != nil {
		return "", err
	}
	store, err := object_storage.NewStorage(a.Config)
	if err != nil {
		return "", err
	}
	upload := func() error {
		return store.Upload(a.Config.Output, io.NopCloser(bytes.NewReader(html)))
	}
	if a.isRemoteStorage() {
		err = utils.Retry(upload, nil)
	} else {
		err = upload()
	}
	if err != nil {
		return "", err
	}
	if gw := a.Config.Metrics.PushgatewayUrl; gw != "" {
		if err := dashboard.PushMetrics(gw); err != nil {
			log.Warn(err)
		}
	}
	url := store.GetUrl(a.Config.Output)
	log.WithFields(log.Fields{
		"total":   report.Totals.Total,
		"passed":  report.Totals.Passed,
		"warned":  report.Totals.Warned,
		"failed":  report.Totals.Failed,
		"skipped": len(report.Skipped),
	}).Info("dashboard generated")
	fmt.Fprintf(a.Out, "✅ Dashboard generated at %s\n", url)
	return url, nil
}
