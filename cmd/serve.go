package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tureright/performance-test-k6/api"
	"github.com/Tureright/performance-test-k6/dashboard"
	"github.com/Tureright/performance-test-k6/ui"
)

func serveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live dashboard, the k6 reports and a JSON API over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return app.Serve(ctx)
		},
	}
	cmd.Flags().String("listen", ":8080", "Address to listen on.")
	app.v.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	return cmd
}

func newRouter(d *dashboard.Dashboard) *httprouter.Router {
	routes := api.NewAPIServer(d).InitRoutes()
	routes = append(routes, ui.NewUI(d).InitRoutes()...)
	r := httprouter.New()
	for _, route := range routes {
		r.Handle(route.Method, route.Path, route.HandlerFunc)
	}
	r.Handler("GET", "/metrics", promhttp.Handler())
	return r
}

func (a *App) Serve(ctx context.Context) error {
	d, err := a.newDashboard()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.Config.Listen,
		Handler:           newRouter(d),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Infof("Serving dashboard of %s on %s", a.Config.ResultsDir, a.Config.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
