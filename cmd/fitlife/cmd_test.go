// ABOUTME: Tests for CLI user resolution and command handlers.
// ABOUTME: Commands run against globals pointed at a temp database.
package main

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/fitlife/internal/config"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/stats"
	"github.com/harperreed/fitlife/internal/storage"
	"github.com/harperreed/fitlife/internal/workout"
)

// setupCLI points the command globals at a temp database.
func setupCLI(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "fitlife.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		repo = nil
		cfg = nil
		workouts = nil
		userFlag = ""
	})

	cfg = &config.Config{}
	repo = db
	workouts = workout.NewService(db, stats.NewReconciler(db))
	return db
}

func TestCurrentUserNoUsers(t *testing.T) {
	setupCLI(t)

	if _, err := currentUser(); err == nil {
		t.Error("expected error with no users registered")
	}
}

func TestCurrentUserSoleUser(t *testing.T) {
	db := setupCLI(t)

	u := models.NewUser("sole@example.com")
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := currentUser()
	if err != nil {
		t.Fatalf("currentUser failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("expected sole user, got %+v", got)
	}
}

func TestCurrentUserAmbiguousNeedsFlag(t *testing.T) {
	db := setupCLI(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := db.CreateUser(models.NewUser(email)); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	if _, err := currentUser(); err == nil {
		t.Error("expected error with multiple users and no flag")
	}

	userFlag = "b@example.com"
	got, err := currentUser()
	if err != nil {
		t.Fatalf("currentUser with flag failed: %v", err)
	}
	if got.Email != "b@example.com" {
		t.Errorf("expected flagged user, got %s", got.Email)
	}
}

func TestCurrentUserConfigDefault(t *testing.T) {
	db := setupCLI(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := db.CreateUser(models.NewUser(email)); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}
	cfg.DefaultUser = "a@example.com"

	got, err := currentUser()
	if err != nil {
		t.Fatalf("currentUser failed: %v", err)
	}
	if got.Email != "a@example.com" {
		t.Errorf("expected configured default, got %s", got.Email)
	}
}

func TestWorkoutStartCommand(t *testing.T) {
	db := setupCLI(t)

	u := models.NewUser("cli@example.com")
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	r := models.NewRoutine("CLI Routine", u.ID)
	if err := db.CreateRoutine(r); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	if err := workoutStartCmd.RunE(workoutStartCmd, []string{r.ID.String()[:8]}); err != nil {
		t.Fatalf("workout start failed: %v", err)
	}

	active, err := db.ActiveSession(u.ID)
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if active == nil || active.RoutineID != r.ID {
		t.Errorf("expected active session for routine, got %+v", active)
	}
}

func TestWorkoutCompleteAndResetCommands(t *testing.T) {
	db := setupCLI(t)

	u := models.NewUser("cli2@example.com")
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	r := models.NewRoutine("CLI Routine", u.ID)
	if err := db.CreateRoutine(r); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}
	ex := models.NewExercise("Push-ups", 3, "15")
	if err := db.CreateExercise(ex); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if err := db.AddRoutineExercise(r.ID, ex.ID, 3, "15"); err != nil {
		t.Fatalf("AddRoutineExercise failed: %v", err)
	}

	if err := workoutStartCmd.RunE(workoutStartCmd, []string{r.ID.String()}); err != nil {
		t.Fatalf("workout start failed: %v", err)
	}
	if err := workoutCompleteCmd.RunE(workoutCompleteCmd, []string{ex.ID.String()[:8]}); err != nil {
		t.Fatalf("workout complete failed: %v", err)
	}

	session, err := db.ActiveSession(u.ID)
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if session.Status != models.StatusCompleted {
		t.Errorf("expected completed session, got %s", session.Status)
	}

	if err := workoutResetCmd.RunE(workoutResetCmd, nil); err != nil {
		t.Fatalf("workout reset failed: %v", err)
	}
	session, err = db.ActiveSession(u.ID)
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if session != nil {
		t.Errorf("expected no session after reset, got %+v", session)
	}
}

func TestRoutinePairCommandUsesExerciseDefaults(t *testing.T) {
	db := setupCLI(t)

	u := models.NewUser("cli3@example.com")
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	r := models.NewRoutine("Pairing", u.ID)
	if err := db.CreateRoutine(r); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}
	ex := models.NewExercise("Rows", 4, "8")
	if err := db.CreateExercise(ex); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if err := routinePairCmd.RunE(routinePairCmd, []string{r.ID.String(), ex.ID.String()}); err != nil {
		t.Fatalf("routine pair failed: %v", err)
	}

	pairings, err := db.ExercisesOf(r.ID)
	if err != nil {
		t.Fatalf("ExercisesOf failed: %v", err)
	}
	if len(pairings) != 1 || pairings[0].Sets != 4 || pairings[0].Reps != "8" {
		t.Errorf("expected exercise defaults on pairing, got %+v", pairings)
	}
}
