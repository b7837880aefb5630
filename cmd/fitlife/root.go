// ABOUTME: Root Cobra command for the fitlife CLI.
// ABOUTME: Opens storage in PersistentPreRunE and closes it afterwards.
package main

import (
	"fmt"

	"github.com/harperreed/fitlife/internal/config"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/stats"
	"github.com/harperreed/fitlife/internal/storage"
	"github.com/harperreed/fitlife/internal/workout"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	repo     storage.Repository
	workouts *workout.Service
	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fitlife",
	Short: "Workout routine and session tracker",
	Long: `FitLife tracks workout routines and the sessions you run them in.

HOW IT FITS TOGETHER:

  Exercises      Reusable definitions (sets, reps, rest, instructions)
  Routines       Named, ordered lists of exercises per user
  Workouts       A started routine; per-exercise completion lives on the
                 workout, never on the routine itself

QUICK START:

  $ fitlife user add you@example.com            # Register yourself
  $ fitlife exercise add "Push-ups" -s 3 -r 15  # Define an exercise
  $ fitlife routine create "Morning"            # Create a routine
  $ fitlife routine pair <routine> <exercise>   # Pair them
  $ fitlife workout start <routine>             # Start working out
  $ fitlife workout complete <exercise>         # Check one off
  $ fitlife workout status                      # See what's left

WORKOUT SESSIONS:

  Completing or removing an exercise only changes the current workout.
  The routine keeps its full exercise list for next time. A workout
  finishes when every exercise still on its list is completed; a workout
  whose list was emptied by removals never finishes on its own.

MCP INTEGRATION:

  Run 'fitlife mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "fitlife": { "command": "fitlife", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in SQLite at ~/.local/share/fitlife/fitlife.db.
  Configuration is at ~/.config/fitlife/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		workouts = workout.NewService(repo, stats.NewReconciler(repo))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// currentUser resolves the user commands act as: --user flag, the
// configured default, or the sole registered user.
func currentUser() (*models.User, error) {
	email := userFlag
	if email == "" {
		email = cfg.DefaultUser
	}
	if email != "" {
		u, err := repo.GetUserByEmail(email)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("unknown user: %s (try 'fitlife user add %s')", email, email)
		}
		return u, nil
	}

	users, err := repo.ListUsers()
	if err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, fmt.Errorf("no users registered (try 'fitlife user add you@example.com')")
	case 1:
		return users[0], nil
	default:
		return nil, fmt.Errorf("multiple users registered; pick one with --user")
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "act as this user (email)")
}
