package cmd

import (
	"github.com/spf13/cobra"
)

func generateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the dashboard from the results directory and publish it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, err := cmd.Flags().GetBool("watch")
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			if watch {
				return app.Watch(ctx)
			}
			_, err = app.Generate(ctx)
			return err
		},
	}
	cmd.Flags().String("output", "index.html", "Name of the dashboard file, relative to the results directory or bucket.")
	cmd.Flags().Bool("watch", false, "Keep running and regenerate whenever a summary changes.")
	app.v.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}
