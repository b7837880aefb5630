// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitlife/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitlife": {
        "command": "fitlife",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  start_workout      Start a workout session for a routine
  current_workout    Get the active session and its exercise list
  complete_exercise  Mark an exercise completed
  remove_exercise    Remove an exercise from the active workout
  reset_workouts     Delete all workout sessions
  list_routines      List routines
  get_stats          Get reconciled workout statistics

AVAILABLE RESOURCES:

  fitlife://active     The active workout with its checklist
  fitlife://routines   Routines with their exercises
  fitlife://stats      Reconciled usage counters`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, cfg.DefaultUser)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
