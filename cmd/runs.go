package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/Tureright/performance-test-k6/model"
)

func runsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Print the run records derived from the results directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			return app.PrintRuns(cmd.Context(), format)
		},
	}
	cmd.Flags().String("format", "table", "Output format: table, json or yaml.")
	return cmd
}

func (a *App) PrintRuns(ctx context.Context, format string) error {
	d, err := a.newDashboard()
	if err != nil {
		return err
	}
	report, err := d.Collect(ctx)
	if err != nil {
		return err
	}
	list := model.NewRunList(report.Runs)
	switch format {
	case "json":
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		out, err := yaml.Marshal(list)
		if err != nil {
			return err
		}
		_, err = a.Out.Write(out)
		return err
	case "table":
		return a.printRunsTable(list)
	default:
		return errors.Errorf("unknown format %q, valid formats are table, json and yaml", format)
	}
}

func (a *App) printRunsTable(list *model.RunList) error {
	w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tSTATUS\tREQUESTS\tAVG MS\tP95 MS\tERRORS %\tDURATION S\tMAX VUS")
	for _, r := range list.Runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%d\t%d\n",
			r.Category, r.Name, r.Status, r.RequestCount, r.AvgDurationMs,
			r.P95DurationMs, r.FailRatePercent, r.DurationSeconds, r.MaxVUs)
	}
	fmt.Fprintf(w, "\nTotal: %d\tPassed: %d\tWarnings: %d\tFailed: %d\n",
		list.Totals.Total, list.Totals.Passed, list.Totals.Warned, list.Totals.Failed)
	return w.Flush()
}
