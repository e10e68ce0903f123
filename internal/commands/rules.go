package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [project-id]",
	Short: "List recurrence rules of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rules, err := app.rules.ListRules(ctx, uint(projectID))
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			fmt.Println("No recurrence rules.")
			return nil
		}
		for _, rule := range rules {
			fmt.Printf("#%d %s [%s] next: %s rotation: %d members\n",
				rule.ID, rule.Frequency, rule.Status,
				rule.NextGenerationAt.Format("2006-01-02 15:04"),
				len(rule.Rotation))
		}
		return nil
	},
}
