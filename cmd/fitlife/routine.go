// ABOUTME: CLI commands for routines and their exercise pairings.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	pairSets int
	pairReps string
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Manage workout routines",
}

var routineCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		r, err := workouts.CreateRoutine(args[0], u.ID)
		if err != nil {
			return fmt.Errorf("failed to create routine: %w", err)
		}
		fmt.Printf("Created routine %s (ID: %s)\n", r.Name, r.ID.String()[:8])
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the current user's routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		routines, err := repo.ListRoutines(u.ID)
		if err != nil {
			return fmt.Errorf("failed to list routines: %w", err)
		}
		if len(routines) == 0 {
			fmt.Println("No routines yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range routines {
			exercises, err := repo.ExercisesOf(r.ID)
			if err != nil {
				return fmt.Errorf("failed to list routine exercises: %w", err)
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(r.ID.String()[:8]),
				r.Name,
				faint.Sprintf("(%d exercises)", len(exercises)))
		}
		return nil
	},
}

var routineShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a routine's exercises in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %s", args[0])
		}

		exercises, err := repo.ExercisesOf(r.ID)
		if err != nil {
			return fmt.Errorf("failed to list routine exercises: %w", err)
		}

		fmt.Println(color.New(color.Bold).Sprint(r.Name))
		if len(exercises) == 0 {
			fmt.Println("  (no exercises paired)")
			return nil
		}

		faint := color.New(color.Faint)
		for i, e := range exercises {
			rest := ""
			if e.RestTime != nil {
				rest = faint.Sprintf(" rest %s", *e.RestTime)
			}
			fmt.Printf("  %d. %s %s  %dx%s%s\n",
				i+1, faint.Sprint(e.ExerciseID.String()[:8]), e.Name, e.Sets, e.Reps, rest)
		}
		return nil
	},
}

var routineRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a routine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %s", args[0])
		}
		if err := repo.RenameRoutine(r.ID, args[1]); err != nil {
			return fmt.Errorf("failed to rename routine: %w", err)
		}
		fmt.Printf("Renamed %s to %s\n", r.Name, args[1])
		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a routine and its sessions",
	Long: `Delete a routine, its exercise pairings, and every workout session
started from it. Exercise definitions are untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %s", args[0])
		}
		if err := repo.DeleteRoutine(r.ID); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}
		fmt.Printf("Deleted routine: %s\n", r.Name)
		return nil
	},
}

var routinePairCmd = &cobra.Command{
	Use:   "pair <routine-id> <exercise-id>",
	Short: "Add an exercise to a routine",
	Long: `Pair an exercise with a routine. Without flags the exercise's own
sets and reps are used; --sets/--reps override them for this routine only.
Pairing the same exercise again updates the override.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %s", args[0])
		}
		e, err := repo.GetExercise(args[1])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[1])
		}

		sets, reps := e.Sets, e.Reps
		if cmd.Flags().Changed("sets") {
			sets = pairSets
		}
		if cmd.Flags().Changed("reps") {
			reps = pairReps
		}

		if err := repo.AddRoutineExercise(r.ID, e.ID, sets, reps); err != nil {
			return fmt.Errorf("failed to pair exercise: %w", err)
		}
		fmt.Printf("Paired %s with %s (%dx%s)\n", e.Name, r.Name, sets, reps)
		return nil
	},
}

var routineUnpairCmd = &cobra.Command{
	Use:   "unpair <routine-id> <exercise-id>",
	Short: "Remove an exercise from a routine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %s", args[0])
		}
		e, err := repo.GetExercise(args[1])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[1])
		}
		if err := repo.RemoveRoutineExercise(r.ID, e.ID); err != nil {
			return fmt.Errorf("failed to unpair exercise: %w", err)
		}
		fmt.Printf("Removed %s from %s\n", e.Name, r.Name)
		return nil
	},
}

func init() {
	routinePairCmd.Flags().IntVarP(&pairSets, "sets", "s", 0, "override sets for this routine")
	routinePairCmd.Flags().StringVarP(&pairReps, "reps", "r", "", "override reps for this routine")

	routineCmd.AddCommand(routineCreateCmd, routineListCmd, routineShowCmd,
		routineRenameCmd, routineDeleteCmd, routinePairCmd, routineUnpairCmd)
	rootCmd.AddCommand(routineCmd)
}
