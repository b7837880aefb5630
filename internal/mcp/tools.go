// ABOUTME: MCP tool implementations for workout sessions and routines.
// ABOUTME: Session tools act on the caller's active session by default.
package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// start_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a workout session for a routine",
	}, s.handleStartWorkout)

	// current_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_workout",
		Description: "Get the active workout session with its exercise list",
	}, s.handleCurrentWorkout)

	// complete_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_exercise",
		Description: "Mark an exercise completed in the active workout",
	}, s.handleCompleteExercise)

	// remove_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_exercise",
		Description: "Remove an exercise from the active workout (the routine is unchanged)",
	}, s.handleRemoveExercise)

	// reset_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_workouts",
		Description: "Delete all of the user's workout sessions",
	}, s.handleResetWorkouts)

	// list_routines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List the user's workout routines",
	}, s.handleListRoutines)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get the user's workout statistics, reconciled against stored data",
	}, s.handleGetStats)
}

// Tool input/output types

type userInput struct {
	User string `json:"user,omitempty" jsonschema:"User email, defaults to the configured user"`
}

type startWorkoutInput struct {
	User      string `json:"user,omitempty" jsonschema:"User email, defaults to the configured user"`
	RoutineID string `json:"routine_id" jsonschema:"Routine ID or prefix"`
}

type sessionOutput struct {
	SessionID     string `json:"session_id"`
	Routine       string `json:"routine"`
	Status        string `json:"status"`
	AlreadyActive bool   `json:"already_active,omitempty"`
	Message       string `json:"message"`
}

type exerciseTargetInput struct {
	User       string `json:"user,omitempty" jsonschema:"User email, defaults to the configured user"`
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID or prefix"`
}

type exerciseActionOutput struct {
	SessionCompleted bool   `json:"session_completed"`
	Message          string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, sessionOutput, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	routine, err := s.repo.GetRoutine(input.RoutineID)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("routine not found: %s", input.RoutineID)
	}

	res, err := s.workouts.Start(user.ID, routine.ID)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}

	out := sessionOutput{
		SessionID:     res.Session.ID.String()[:8],
		Routine:       routine.Name,
		Status:        string(res.Session.Status),
		AlreadyActive: res.AlreadyActive,
	}
	if res.AlreadyActive {
		out.Message = fmt.Sprintf("Workout for %s already started (ID: %s)", routine.Name, out.SessionID)
	} else {
		out.Message = fmt.Sprintf("Started %s workout (ID: %s)", routine.Name, out.SessionID)
	}
	return nil, out, nil
}

func (s *Server) handleCurrentWorkout(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.workouts.Active(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if session == nil {
		return nil, map[string]interface{}{"message": "No active workout."}, nil
	}

	exercises, err := s.workouts.Exercises(session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return nil, map[string]interface{}{
		"session_id": session.ID.String()[:8],
		"routine_id": session.RoutineID.String()[:8],
		"status":     session.Status,
		"started_at": session.StartedAt,
		"exercises":  exercises,
	}, nil
}

func (s *Server) handleCompleteExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseTargetInput) (*mcp.CallToolResult, exerciseActionOutput, error) {
	session, exercise, err := s.activeTarget(input.User, input.ExerciseID)
	if err != nil {
		return nil, exerciseActionOutput{}, err
	}

	done, err := s.workouts.CompleteExercise(session.ID, exercise.ID)
	if err != nil {
		return nil, exerciseActionOutput{}, fmt.Errorf("failed to complete exercise: %w", err)
	}

	msg := fmt.Sprintf("Completed %s", exercise.Name)
	if done {
		msg += " — workout finished!"
	}
	return nil, exerciseActionOutput{SessionCompleted: done, Message: msg}, nil
}

func (s *Server) handleRemoveExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseTargetInput) (*mcp.CallToolResult, exerciseActionOutput, error) {
	session, exercise, err := s.activeTarget(input.User, input.ExerciseID)
	if err != nil {
		return nil, exerciseActionOutput{}, err
	}

	done, err := s.workouts.RemoveExercise(session.ID, exercise.ID)
	if err != nil {
		return nil, exerciseActionOutput{}, fmt.Errorf("failed to remove exercise: %w", err)
	}

	msg := fmt.Sprintf("Removed %s from this workout", exercise.Name)
	if done {
		msg += " — workout finished!"
	}
	return nil, exerciseActionOutput{SessionCompleted: done, Message: msg}, nil
}

func (s *Server) handleResetWorkouts(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, simpleOutput, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	res, err := s.workouts.HandleGesture(workout.ShakeReset, user.ID, uuid.Nil, uuid.Nil)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to reset workouts: %w", err)
	}
	if !res.SessionsReset {
		return nil, simpleOutput{}, fmt.Errorf("reset did not run")
	}

	return nil, simpleOutput{Message: "All workout sessions reset."}, nil
}

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}

	routines, err := s.repo.ListRoutines(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list routines: %w", err)
	}
	if len(routines) == 0 {
		return nil, map[string]interface{}{"message": "No routines found."}, nil
	}

	return nil, routines, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.reconciler.Reconcile(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reconcile stats: %w", err)
	}

	return nil, st, nil
}

// activeTarget resolves the caller's active session and the named exercise.
func (s *Server) activeTarget(userEmail, exerciseID string) (*models.Session, *models.Exercise, error) {
	user, err := s.resolveUser(userEmail)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.workouts.Active(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if session == nil {
		return nil, nil, fmt.Errorf("no active workout")
	}

	exercise, err := s.repo.GetExercise(exerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", exerciseID)
	}
	return session, exercise, nil
}
