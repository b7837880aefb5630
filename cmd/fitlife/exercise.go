// ABOUTME: CLI commands for the exercise catalog.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseSets         int
	exerciseReps         string
	exerciseRest         string
	exerciseImage        string
	exerciseEquipment    []string
	exerciseInstructions []string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Define a new exercise",
	Long: `Define a reusable exercise with default sets and reps.

Routines can override sets and reps per pairing; the values here are
the defaults offered when pairing.

EXAMPLES:

  fitlife exercise add "Push-ups" --sets 3 --reps 15
  fitlife exercise add "Plank" -s 3 -r "60s" --rest 30s
  fitlife exercise add "Squats" -s 4 -r 10 \
      --equipment barbell --equipment rack \
      --step "Set the bar" --step "Squat to depth" --step "Drive up"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewExercise(args[0], exerciseSets, exerciseReps)
		if exerciseRest != "" {
			e.WithRestTime(exerciseRest)
		}
		if exerciseImage != "" {
			e.WithImagePath(exerciseImage)
		}
		if len(exerciseEquipment) > 0 {
			e.WithEquipment(exerciseEquipment...)
		}
		if len(exerciseInstructions) > 0 {
			e.WithInstructions(exerciseInstructions...)
		}

		if err := repo.CreateExercise(e); err != nil {
			return fmt.Errorf("failed to create exercise: %w", err)
		}
		fmt.Printf("Added %s (ID: %s)\n", e.Name, e.ID.String()[:8])
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises defined.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range exercises {
			rest := ""
			if e.RestTime != nil {
				rest = faint.Sprintf(" rest %s", *e.RestTime)
			}
			fmt.Printf("%s %s  %dx%s%s\n",
				faint.Sprint(e.ID.String()[:8]), e.Name, e.Sets, e.Reps, rest)
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an exercise with equipment and instructions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := repo.GetExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		fmt.Printf("%s  %dx%s\n", color.New(color.Bold).Sprint(e.Name), e.Sets, e.Reps)
		if e.RestTime != nil {
			fmt.Printf("Rest: %s\n", *e.RestTime)
		}
		if len(e.Equipment) > 0 {
			fmt.Printf("Equipment: %s\n", strings.Join(e.Equipment, ", "))
		}
		if len(e.Instructions) > 0 {
			fmt.Println("Instructions:")
			for i, step := range e.Instructions {
				fmt.Printf("  %d. %s\n", i+1, step)
			}
		}
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise everywhere",
	Long: `Delete an exercise from the catalog.

The exercise is also removed from every routine that pairs it. Routines
themselves are untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteExercise(args[0]); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		fmt.Printf("Deleted exercise: %s\n", args[0])
		return nil
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an exercise's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := repo.GetExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		if cmd.Flags().Changed("sets") {
			e.Sets = exerciseSets
		}
		if cmd.Flags().Changed("reps") {
			e.Reps = exerciseReps
		}
		if cmd.Flags().Changed("rest") {
			e.WithRestTime(exerciseRest)
		}
		if cmd.Flags().Changed("image") {
			e.WithImagePath(exerciseImage)
		}
		if cmd.Flags().Changed("equipment") {
			e.Equipment = exerciseEquipment
		}
		if cmd.Flags().Changed("step") {
			e.Instructions = exerciseInstructions
		}

		if err := repo.UpdateExercise(e); err != nil {
			return fmt.Errorf("failed to update exercise: %w", err)
		}
		fmt.Printf("Updated %s\n", e.Name)
		return nil
	},
}

func addExerciseFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&exerciseSets, "sets", "s", 3, "default number of sets")
	cmd.Flags().StringVarP(&exerciseReps, "reps", "r", "10", "default reps per set")
	cmd.Flags().StringVar(&exerciseRest, "rest", "", "rest time between sets")
	cmd.Flags().StringVar(&exerciseImage, "image", "", "image path or URL")
	cmd.Flags().StringArrayVar(&exerciseEquipment, "equipment", nil, "equipment needed (repeatable)")
	cmd.Flags().StringArrayVar(&exerciseInstructions, "step", nil, "instruction step, in order (repeatable)")
}

func init() {
	addExerciseFlags(exerciseAddCmd)
	addExerciseFlags(exerciseEditCmd)

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseShowCmd, exerciseDeleteCmd, exerciseEditCmd)
	rootCmd.AddCommand(exerciseCmd)
}
