// ABOUTME: CLI command for showing reconciled workout statistics.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlife/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout statistics",
	Long: `Show lifetime workout statistics for the current user.

Counters are reconciled before display: each one is raised to at least
the current count in the database, so missed increments heal themselves.
Deleting workouts or routines never lowers lifetime totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		st, err := stats.NewReconciler(repo).Reconcile(u.ID)
		if err != nil {
			return fmt.Errorf("failed to reconcile stats: %w", err)
		}

		bold := color.New(color.Bold)
		fmt.Printf("%s\n", bold.Sprintf("Stats for %s", u.Email))
		fmt.Printf("  Workouts:   %d\n", st.TotalSessions)
		fmt.Printf("  Routines:   %d\n", st.TotalRoutines)
		fmt.Printf("  Exercises:  %d\n", st.TotalExercises)
		fmt.Printf("  Active days: %d\n", st.ActiveDays)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
