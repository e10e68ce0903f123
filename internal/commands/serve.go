package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/service"
)

const jobTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation sweep and notification dispatch on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.close()

		scheduler := service.NewScheduler(time.Local)
		if _, err := scheduler.ScheduleInterval(app.cfg.SweepInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := app.rules.SweepDue(jobCtx); err != nil {
				log.Printf("[error] sweep: %v", err)
			}
		}); err != nil {
			return err
		}
		if _, err := scheduler.ScheduleInterval(app.cfg.DispatchInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := app.notifications.DispatchDue(jobCtx); err != nil {
				log.Printf("[error] dispatch: %v", err)
			}
		}); err != nil {
			return err
		}

		scheduler.Start()
		defer scheduler.Stop()

		log.Println("taskflow started.")
		<-ctx.Done()
		log.Println("Shutdown complete.")
		return nil
	},
}
