package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one generation sweep and dispatch due notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := app.rules.SweepDue(ctx); err != nil {
			return err
		}
		return app.notifications.DispatchDue(ctx)
	},
}
