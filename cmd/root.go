package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "k6dash",
		Short: "k6dash aggregates k6 run summaries into an HTML dashboard.",
		Long: `k6dash aggregates k6 run summaries into an HTML dashboard.

Summaries are read from <results-dir>/<category>/<scenario>-summary.json where
category is one of smoke, load, stress, spike or soak.

Persistent config can be saved in a YAML or JSON file and passed with --config.
Every key can also be set through the environment with the K6DASH_ prefix,
e.g. K6DASH_RESULTS_DIR=results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigFile, "config", "", "Config file (YAML or JSON).")
	flags.String("results-dir", "results", "Directory holding one sub-directory per test category.")
	flags.String("log-level", "info", "Log level: debug, info, warn or error.")
	flags.Bool("log-json", false, "Log in JSON format.")
	flags.Bool("strict", false, "Fail when a summary file cannot be parsed instead of skipping it.")
	app.v.BindPFlag("results_dir", flags.Lookup("results-dir"))
	app.v.BindPFlag("log_level", flags.Lookup("log-level"))
	app.v.BindPFlag("log_format.json", flags.Lookup("log-json"))
	app.v.BindPFlag("strict", flags.Lookup("strict"))

	cmd.AddCommand(
		generateCmd(app),
		runsCmd(app),
		serveCmd(app),
		versionCmd(app),
	)
	return cmd
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Execute runs the CLI and exits non-zero on any error.
func Execute() {
	if err := RootCmd(New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}
