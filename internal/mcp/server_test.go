// ABOUTME: Tests for the MCP server, tools, and resources.
// ABOUTME: Handlers are exercised directly against a temp SQLite store.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type env struct {
	db      *storage.DB
	server  *Server
	user    *models.User
	routine *models.Routine
	ex      *models.Exercise
}

// setupServer creates a server over a temp database with one user,
// one routine, and one paired exercise.
func setupServer(t *testing.T) *env {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "fitlife.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	user := models.NewUser("mcp@example.com")
	if err := db.CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	routine := models.NewRoutine("MCP Routine", user.ID)
	if err := db.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}
	ex := models.NewExercise("Push-ups", 3, "15")
	if err := db.CreateExercise(ex); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if err := db.AddRoutineExercise(routine.ID, ex.ID, 3, "15"); err != nil {
		t.Fatalf("AddRoutineExercise failed: %v", err)
	}

	server, err := NewServer(db, user.Email)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	return &env{db: db, server: server, user: user, routine: routine, ex: ex}
}

func TestNewServer(t *testing.T) {
	e := setupServer(t)

	if e.server.mcpServer == nil {
		t.Error("expected non-nil mcpServer")
	}
	if e.server.repo == nil {
		t.Error("expected non-nil repo")
	}
}

func TestHandleStartWorkout(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	_, out, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String()[:8],
	})
	if err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}
	if out.AlreadyActive {
		t.Error("first start should not be AlreadyActive")
	}
	if out.Routine != "MCP Routine" {
		t.Errorf("unexpected routine name: %s", out.Routine)
	}

	// Starting the same routine again is informational
	_, out, err = e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	})
	if err != nil {
		t.Fatalf("second handleStartWorkout failed: %v", err)
	}
	if !out.AlreadyActive {
		t.Error("second start should be AlreadyActive")
	}
}

func TestHandleStartWorkoutUnknownRoutine(t *testing.T) {
	e := setupServer(t)

	_, _, err := e.server.handleStartWorkout(context.Background(), &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: "ffffffff",
	})
	if err == nil || !strings.Contains(err.Error(), "routine not found") {
		t.Errorf("expected routine not found, got %v", err)
	}
}

func TestHandleCurrentWorkout(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	_, out, err := e.server.handleCurrentWorkout(ctx, &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("handleCurrentWorkout failed: %v", err)
	}
	if m, ok := out.(map[string]interface{}); !ok || m["message"] != "No active workout." {
		t.Errorf("expected no-active message, got %v", out)
	}

	if _, _, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	_, out, err = e.server.handleCurrentWorkout(ctx, &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("handleCurrentWorkout failed: %v", err)
	}
	m, ok := out.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map output, got %T", out)
	}
	exercises, ok := m["exercises"].([]*models.SessionExercise)
	if !ok || len(exercises) != 1 {
		t.Errorf("expected 1 exercise in active workout, got %v", m["exercises"])
	}
}

func TestHandleCompleteExerciseFinishesWorkout(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	if _, _, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	_, out, err := e.server.handleCompleteExercise(ctx, &mcp.CallToolRequest{}, exerciseTargetInput{
		ExerciseID: e.ex.ID.String()[:8],
	})
	if err != nil {
		t.Fatalf("handleCompleteExercise failed: %v", err)
	}
	if !out.SessionCompleted {
		t.Error("completing the only exercise should finish the workout")
	}
}

func TestHandleCompleteExerciseNoActiveWorkout(t *testing.T) {
	e := setupServer(t)

	_, _, err := e.server.handleCompleteExercise(context.Background(), &mcp.CallToolRequest{}, exerciseTargetInput{
		ExerciseID: e.ex.ID.String(),
	})
	if err == nil || !strings.Contains(err.Error(), "no active workout") {
		t.Errorf("expected no active workout error, got %v", err)
	}
}

func TestHandleRemoveExercise(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	if _, _, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	_, out, err := e.server.handleRemoveExercise(ctx, &mcp.CallToolRequest{}, exerciseTargetInput{
		ExerciseID: e.ex.ID.String(),
	})
	if err != nil {
		t.Fatalf("handleRemoveExercise failed: %v", err)
	}
	// Removing the only exercise empties the list; that never completes
	if out.SessionCompleted {
		t.Error("an emptied workout must not count as completed")
	}
}

func TestHandleResetWorkouts(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	if _, _, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	_, out, err := e.server.handleResetWorkouts(ctx, &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("handleResetWorkouts failed: %v", err)
	}
	if out.Message == "" {
		t.Error("expected confirmation message")
	}

	active, err := e.db.ActiveSession(e.user.ID)
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if active != nil {
		t.Errorf("expected no sessions after reset, got %+v", active)
	}
}

func TestHandleGetStats(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	if _, _, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	_, out, err := e.server.handleGetStats(ctx, &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("handleGetStats failed: %v", err)
	}
	st, ok := out.(*models.UserStats)
	if !ok {
		t.Fatalf("expected *models.UserStats, got %T", out)
	}
	if st.TotalSessions != 1 || st.TotalRoutines != 1 {
		t.Errorf("unexpected reconciled stats: %+v", st)
	}
}

func TestResolveUserFallbacks(t *testing.T) {
	e := setupServer(t)

	// Explicit email wins
	u, err := e.server.resolveUser("mcp@example.com")
	if err != nil || u.ID != e.user.ID {
		t.Errorf("resolveUser by email = %+v, %v", u, err)
	}

	// Unknown email fails
	if _, err := e.server.resolveUser("ghost@example.com"); err == nil {
		t.Error("expected error for unknown email")
	}

	// No default, single user: falls through to the sole user
	e.server.defaultUser = ""
	u, err = e.server.resolveUser("")
	if err != nil || u.ID != e.user.ID {
		t.Errorf("resolveUser sole-user fallback = %+v, %v", u, err)
	}
}

func TestHandleActiveResource(t *testing.T) {
	e := setupServer(t)
	ctx := context.Background()

	res, err := e.server.handleActiveResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleActiveResource failed: %v", err)
	}
	if len(res.Contents) != 1 || !strings.Contains(res.Contents[0].Text, "No active workout") {
		t.Errorf("expected no-active message, got %+v", res.Contents)
	}

	if _, _, err := e.server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{
		RoutineID: e.routine.ID.String(),
	}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	res, err = e.server.handleActiveResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleActiveResource failed: %v", err)
	}
	if !strings.Contains(res.Contents[0].Text, "Push-ups") {
		t.Errorf("expected exercise in resource, got %s", res.Contents[0].Text)
	}
}

func TestHandleRoutinesResource(t *testing.T) {
	e := setupServer(t)

	res, err := e.server.handleRoutinesResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleRoutinesResource failed: %v", err)
	}
	if !strings.Contains(res.Contents[0].Text, "MCP Routine") {
		t.Errorf("expected routine in resource, got %s", res.Contents[0].Text)
	}
}

func TestHandleStatsResource(t *testing.T) {
	e := setupServer(t)

	res, err := e.server.handleStatsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleStatsResource failed: %v", err)
	}
	if !strings.Contains(res.Contents[0].Text, "total_routines") {
		t.Errorf("expected stats fields in resource, got %s", res.Contents[0].Text)
	}
}
