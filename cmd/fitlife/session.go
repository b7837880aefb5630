// ABOUTME: CLI commands for workout sessions: start, status, complete,
// ABOUTME: remove, list, delete, and reset.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/spf13/cobra"
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Run workout sessions",
}

var workoutStartCmd = &cobra.Command{
	Use:   "start <routine-id>",
	Short: "Start a workout for a routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}
		r, err := repo.GetRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %s", args[0])
		}

		res, err := workouts.Start(u.ID, r.ID)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}
		if res.AlreadyActive {
			fmt.Printf("Workout for %s already started (ID: %s)\n", r.Name, res.Session.ID.String()[:8])
			return nil
		}
		fmt.Printf("Started %s workout (ID: %s)\n", r.Name, res.Session.ID.String()[:8])
		return nil
	},
}

var workoutStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active workout and its checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		session, err := workouts.Active(u.ID)
		if err != nil {
			return fmt.Errorf("failed to get active workout: %w", err)
		}
		if session == nil {
			fmt.Println("No active workout.")
			return nil
		}

		r, err := repo.GetRoutine(session.RoutineID.String())
		if err != nil {
			return fmt.Errorf("failed to load routine: %w", err)
		}

		header := fmt.Sprintf("%s — started %s", r.Name, session.StartedAt.Format("2006-01-02 15:04"))
		if session.Status == models.StatusCompleted {
			header += color.GreenString(" (completed)")
		}
		fmt.Println(color.New(color.Bold).Sprint(header))

		exercises, err := workouts.Exercises(session.ID)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("  (all exercises removed from this workout)")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range exercises {
			mark := "[ ]"
			if e.Status == models.StatusCompleted {
				mark = color.GreenString("[x]")
			}
			fmt.Printf("  %s %s %s  %dx%s\n",
				mark, faint.Sprint(e.ExerciseID.String()[:8]), e.Name, e.Sets, e.Reps)
		}
		return nil
	},
}

var workoutCompleteCmd = &cobra.Command{
	Use:     "complete <exercise-id>",
	Aliases: []string{"done"},
	Short:   "Mark an exercise completed in the active workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, e, err := activeSessionTarget(args[0])
		if err != nil {
			return err
		}

		done, err := workouts.CompleteExercise(session.ID, e.ID)
		if err != nil {
			return fmt.Errorf("failed to complete exercise: %w", err)
		}
		fmt.Printf("Completed %s\n", e.Name)
		if done {
			fmt.Println(color.GreenString("Workout finished!"))
		}
		return nil
	},
}

var workoutRemoveCmd = &cobra.Command{
	Use:   "remove <exercise-id>",
	Short: "Remove an exercise from the active workout",
	Long: `Remove an exercise from the active workout only. The routine keeps
it for next time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, e, err := activeSessionTarget(args[0])
		if err != nil {
			return err
		}

		done, err := workouts.RemoveExercise(session.ID, e.ID)
		if err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}
		fmt.Printf("Removed %s from this workout\n", e.Name)
		if done {
			fmt.Println(color.GreenString("Workout finished!"))
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the current user's workout sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		sessions, err := repo.ListSessions(u.ID)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No workouts yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			status := string(s.Status)
			if s.Status == models.StatusCompleted {
				status = color.GreenString(status)
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(s.ID.String()[:8]),
				faint.Sprint(s.StartedAt.Format("2006-01-02 15:04")),
				s.RoutineName,
				status)
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete one workout session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		// Resolve by prefix against the user's own sessions
		sessions, err := repo.ListSessions(u.ID)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		var target *models.Session
		for _, s := range sessions {
			if s.ID.String() == args[0] || s.ID.String()[:8] == args[0] {
				target = s
				break
			}
		}
		if target == nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		if err := workouts.Delete(target.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		fmt.Printf("Deleted workout: %s\n", target.RoutineName)
		return nil
	},
}

var workoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all of the current user's workouts",
	Long: `Delete every workout session for the current user, with all
per-session exercise state. Routines, exercises, and lifetime stats are
untouched. This is the CLI counterpart of the shake-to-reset gesture.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		if err := workouts.ResetAll(u.ID); err != nil {
			return fmt.Errorf("failed to reset workouts: %w", err)
		}
		fmt.Println("All workouts reset.")
		return nil
	},
}

// activeSessionTarget resolves the current user's active session and the
// named exercise.
func activeSessionTarget(exerciseID string) (*models.Session, *models.Exercise, error) {
	u, err := currentUser()
	if err != nil {
		return nil, nil, err
	}

	session, err := workouts.Active(u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active workout: %w", err)
	}
	if session == nil {
		return nil, nil, fmt.Errorf("no active workout (try 'fitlife workout start')")
	}

	e, err := repo.GetExercise(exerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", exerciseID)
	}
	return session, e, nil
}

func init() {
	workoutCmd.AddCommand(workoutStartCmd, workoutStatusCmd, workoutCompleteCmd,
		workoutRemoveCmd, workoutListCmd, workoutDeleteCmd, workoutResetCmd)
	rootCmd.AddCommand(workoutCmd)
}
