package cmd

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Set with -ldflags at build time.
var (
	ReleaseVersion = "dev"
	GitCommit      = "unknown"
	BuildTime      = "unknown"
)

func versionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(app.Out, 1, 1, 1, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "Version:\t%s\n", ReleaseVersion)
			fmt.Fprintf(w, "Commit:\t%s\n", GitCommit)
			fmt.Fprintf(w, "Go version:\t%s\n", runtime.Version())
			fmt.Fprintf(w, "Built:\t%s\n", BuildTime)
			return nil
		},
	}
}
