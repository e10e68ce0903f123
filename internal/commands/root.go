package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Recurring task generation service",
	Long: `taskflow generates concrete tasks from recurrence rules, rotates
auto-assignment across project members, and queues advance notifications.
Run it as a background service with "serve" or trigger a single pass with
"sweep".`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(validateCmd)
}
