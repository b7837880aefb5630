// ABOUTME: Tests for the workout service: completion policy, gestures,
// ABOUTME: and the session lifecycle against a real SQLite repository.
package workout

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/stats"
	"github.com/harperreed/fitlife/internal/storage"
)

type fixture struct {
	db      *storage.DB
	svc     *Service
	user    *models.User
	routine *models.Routine
	ex      []*models.Exercise
}

// setup creates a service over a temp database with a user, a routine,
// and n paired exercises.
func setup(t *testing.T, n int) *fixture {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	user := models.NewUser("workout@example.com")
	if err := db.CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	routine := models.NewRoutine("Test Routine", user.ID)
	if err := db.CreateRoutine(routine); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	var exercises []*models.Exercise
	for i := 0; i < n; i++ {
		ex := models.NewExercise(string(rune('A'+i))+" Exercise", 3, "10")
		if err := db.CreateExercise(ex); err != nil {
			t.Fatalf("CreateExercise failed: %v", err)
		}
		if err := db.AddRoutineExercise(routine.ID, ex.ID, 3, "10"); err != nil {
			t.Fatalf("AddRoutineExercise failed: %v", err)
		}
		exercises = append(exercises, ex)
	}

	return &fixture{
		db:      db,
		svc:     NewService(db, stats.NewReconciler(db)),
		user:    user,
		routine: routine,
		ex:      exercises,
	}
}

func (f *fixture) start(t *testing.T) *models.Session {
	t.Helper()
	res, err := f.svc.Start(f.user.ID, f.routine.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if res.AlreadyActive {
		t.Fatal("expected a fresh session")
	}
	return res.Session
}

func TestStartRecordsStatsEvent(t *testing.T) {
	f := setup(t, 1)
	f.start(t)

	st, err := f.db.GetUserStats(f.user.ID)
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if st.TotalSessions != 1 {
		t.Errorf("expected total sessions 1, got %d", st.TotalSessions)
	}
}

func TestStartTwiceIsInformational(t *testing.T) {
	f := setup(t, 1)
	first := f.start(t)

	res, err := f.svc.Start(f.user.ID, f.routine.ID)
	if err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if !res.AlreadyActive {
		t.Error("expected AlreadyActive on second start")
	}
	if res.Session.ID != first.ID {
		t.Errorf("expected existing session %s, got %s", first.ID, res.Session.ID)
	}

	// The duplicate start must not bump the counter
	st, err := f.db.GetUserStats(f.user.ID)
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if st.TotalSessions != 1 {
		t.Errorf("expected total sessions still 1, got %d", st.TotalSessions)
	}
}

func TestStartSecondRoutineAllowed(t *testing.T) {
	f := setup(t, 1)
	f.start(t)

	other := models.NewRoutine("Other Routine", f.user.ID)
	if err := f.db.CreateRoutine(other); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	res, err := f.svc.Start(f.user.ID, other.ID)
	if err != nil {
		t.Fatalf("Start on second routine failed: %v", err)
	}
	if res.AlreadyActive {
		t.Error("different routine should start fresh")
	}

	active, err := f.svc.Active(f.user.ID)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if active == nil || active.RoutineID != other.ID {
		t.Errorf("expected newest session active, got %+v", active)
	}
}

// Completing one exercise, removing another, and completing the last one
// must finish the session.
func TestCompleteRemoveCompleteFinishesSession(t *testing.T) {
	f := setup(t, 3)
	session := f.start(t)

	done, err := f.svc.CompleteExercise(session.ID, f.ex[0].ID)
	if err != nil {
		t.Fatalf("CompleteExercise failed: %v", err)
	}
	if done {
		t.Error("session should not complete with exercises pending")
	}

	done, err = f.svc.RemoveExercise(session.ID, f.ex[1].ID)
	if err != nil {
		t.Fatalf("RemoveExercise failed: %v", err)
	}
	if done {
		t.Error("session should not complete with one exercise pending")
	}

	done, err = f.svc.CompleteExercise(session.ID, f.ex[2].ID)
	if err != nil {
		t.Fatalf("final CompleteExercise failed: %v", err)
	}
	if !done {
		t.Error("completing the last effective exercise should finish the session")
	}

	got, err := f.db.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("expected session completed, got %s", got.Status)
	}
}

func TestEvaluateAllRemoved(t *testing.T) {
	f := setup(t, 2)
	session := f.start(t)

	for _, ex := range f.ex {
		if _, err := f.svc.RemoveExercise(session.ID, ex.ID); err != nil {
			t.Fatalf("RemoveExercise failed: %v", err)
		}
	}

	done, err := f.svc.Evaluate(session.ID)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if done {
		t.Error("an emptied session must not count as completed")
	}

	got, err := f.db.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("expected session still pending, got %s", got.Status)
	}
}

func TestEvaluateUnknownSession(t *testing.T) {
	f := setup(t, 0)

	done, err := f.svc.Evaluate(uuid.New())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if done {
		t.Error("unknown session must not evaluate as completed")
	}
}

func TestUncompleteDoesNotReopenSession(t *testing.T) {
	f := setup(t, 1)
	session := f.start(t)

	done, err := f.svc.CompleteExercise(session.ID, f.ex[0].ID)
	if err != nil || !done {
		t.Fatalf("CompleteExercise = %v, %v; want completed", done, err)
	}

	if err := f.svc.UncompleteExercise(session.ID, f.ex[0].ID); err != nil {
		t.Fatalf("UncompleteExercise failed: %v", err)
	}

	got, err := f.db.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("session completion is one-way; got %s", got.Status)
	}

	list, err := f.svc.Exercises(session.ID)
	if err != nil {
		t.Fatalf("Exercises failed: %v", err)
	}
	if list[0].Status != models.StatusPending {
		t.Errorf("exercise status should be pending again, got %s", list[0].Status)
	}
}

func TestCompleteExerciseNotInRoutine(t *testing.T) {
	f := setup(t, 1)
	session := f.start(t)

	stranger := models.NewExercise("Stranger", 1, "1")
	if err := f.db.CreateExercise(stranger); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if _, err := f.svc.CompleteExercise(session.ID, stranger.ID); err != storage.ErrNotInRoutine {
		t.Errorf("expected ErrNotInRoutine, got %v", err)
	}
}

func TestCreateRoutineRecordsEvent(t *testing.T) {
	f := setup(t, 0)

	routine, err := f.svc.CreateRoutine("Created Via Service", f.user.ID)
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}
	if routine.Name != "Created Via Service" {
		t.Errorf("unexpected routine: %+v", routine)
	}

	st, err := f.db.GetUserStats(f.user.ID)
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if st.TotalRoutines != 1 {
		t.Errorf("expected total routines 1, got %d", st.TotalRoutines)
	}
}

func TestHandleGestureDispatch(t *testing.T) {
	f := setup(t, 2)
	session := f.start(t)

	res, err := f.svc.HandleGesture(SwipeComplete, f.user.ID, session.ID, f.ex[0].ID)
	if err != nil {
		t.Fatalf("SwipeComplete failed: %v", err)
	}
	if res.SessionCompleted {
		t.Error("session should not complete yet")
	}

	res, err = f.svc.HandleGesture(SwipeRemove, f.user.ID, session.ID, f.ex[1].ID)
	if err != nil {
		t.Fatalf("SwipeRemove failed: %v", err)
	}
	if !res.SessionCompleted {
		t.Error("removing the only pending exercise should finish the session")
	}

	res, err = f.svc.HandleGesture(ShakeReset, f.user.ID, uuid.Nil, uuid.Nil)
	if err != nil {
		t.Fatalf("ShakeReset failed: %v", err)
	}
	if !res.SessionsReset {
		t.Error("expected SessionsReset")
	}

	active, err := f.svc.Active(f.user.ID)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if active != nil {
		t.Errorf("expected no sessions after reset, got %+v", active)
	}
}

func TestHandleGestureUnknown(t *testing.T) {
	f := setup(t, 0)

	if _, err := f.svc.HandleGesture(Gesture(42), f.user.ID, uuid.Nil, uuid.Nil); err == nil {
		t.Error("expected error for unknown gesture")
	}
}
