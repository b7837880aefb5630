// ABOUTME: Workout session lifecycle: start, exercise overlays, completion.
// ABOUTME: Completion is evaluated over the effective list and is non-vacuous.
package workout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/stats"
	"github.com/harperreed/fitlife/internal/storage"
)

// Service coordinates sessions, their exercise overlays, and the stats
// events those actions generate.
type Service struct {
	repo  storage.Repository
	stats *stats.Reconciler
}

// NewService creates a workout Service over the given repository.
func NewService(repo storage.Repository, rec *stats.Reconciler) *Service {
	return &Service{repo: repo, stats: rec}
}

// StartResult reports the outcome of starting a workout.
type StartResult struct {
	Session       *models.Session
	AlreadyActive bool
}

// Start begins a workout session for a routine. If the user already has a
// session for that routine, the existing one is returned and flagged; this
// is informational, not an error. A genuinely new session also records a
// session-started stats event.
func (s *Service) Start(userID, routineID uuid.UUID) (*StartResult, error) {
	session := models.NewSession(userID, routineID)
	existing, err := s.repo.InsertSessionIfAbsent(session)
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	if existing != nil {
		return &StartResult{Session: existing, AlreadyActive: true}, nil
	}

	// Outside the insert's transaction. A crash here loses one increment,
	// which Reconcile recovers by recounting.
	if err := s.stats.RecordEvent(userID, stats.SessionStarted); err != nil {
		return nil, fmt.Errorf("record session start: %w", err)
	}

	return &StartResult{Session: session}, nil
}

// Active returns the user's most recently started session, or nil.
func (s *Service) Active(userID uuid.UUID) (*models.Session, error) {
	return s.repo.ActiveSession(userID)
}

// Exercises returns the session's current effective exercise list.
func (s *Service) Exercises(sessionID uuid.UUID) ([]*models.SessionExercise, error) {
	return s.repo.EffectiveList(sessionID)
}

// CompleteExercise marks one exercise completed within the session, then
// re-evaluates the session. Returns true when this completion finished the
// whole session.
func (s *Service) CompleteExercise(sessionID, exerciseID uuid.UUID) (bool, error) {
	if err := s.repo.SetSessionExerciseStatus(sessionID, exerciseID, models.StatusCompleted); err != nil {
		return false, err
	}
	return s.Evaluate(sessionID)
}

// UncompleteExercise marks one exercise back to pending. The session's own
// status is not re-evaluated: completion is one-way.
func (s *Service) UncompleteExercise(sessionID, exerciseID uuid.UUID) error {
	return s.repo.SetSessionExerciseStatus(sessionID, exerciseID, models.StatusPending)
}

// RemoveExercise hides an exercise from the session's view, then
// re-evaluates: removing the last pending exercise can finish the session.
func (s *Service) RemoveExercise(sessionID, exerciseID uuid.UUID) (bool, error) {
	if err := s.repo.RemoveSessionExercise(sessionID, exerciseID); err != nil {
		return false, err
	}
	return s.Evaluate(sessionID)
}

// Evaluate checks whether every exercise in the session's effective list is
// completed and, if so, marks the session completed. An empty effective
// list never completes a session: with nothing left to do there is nothing
// that was done. Marking is idempotent, so re-evaluating a completed
// session is harmless.
func (s *Service) Evaluate(sessionID uuid.UUID) (bool, error) {
	list, err := s.repo.EffectiveList(sessionID)
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return false, nil
	}
	for _, se := range list {
		if se.Status != models.StatusCompleted {
			return false, nil
		}
	}

	if err := s.repo.MarkSessionCompleted(sessionID); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes one session and its overlay rows.
func (s *Service) Delete(sessionID uuid.UUID) error {
	return s.repo.DeleteSession(sessionID)
}

// ResetAll wipes every session the user has, with all overlay rows.
// Lifetime stats counters are left alone.
func (s *Service) ResetAll(userID uuid.UUID) error {
	return s.repo.ResetAllSessions(userID)
}

// CreateRoutine stores a new routine and records the stats event.
func (s *Service) CreateRoutine(name string, userID uuid.UUID) (*models.Routine, error) {
	routine := models.NewRoutine(name, userID)
	if err := s.repo.CreateRoutine(routine); err != nil {
		return nil, err
	}
	if err := s.stats.RecordEvent(userID, stats.RoutineCreated); err != nil {
		return nil, fmt.Errorf("record routine creation: %w", err)
	}
	return routine, nil
}
