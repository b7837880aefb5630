// ABOUTME: Stats event recording and ratchet-style reconciliation.
// ABOUTME: Reconcile raises counters toward ground truth; it never lowers them.
package stats

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/storage"
)

// EventKind names a countable usage event.
type EventKind int

const (
	RoutineCreated EventKind = iota
	SessionStarted
	ActiveDay
)

// Reconciler maintains the per-user usage counters. Writes are incremental
// and deliberately decoupled from the event's own transaction: losing an
// increment only lowers a counter that Reconcile can later raise back.
type Reconciler struct {
	repo storage.Repository
}

// NewReconciler creates a Reconciler over the given repository.
func NewReconciler(repo storage.Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// RecordEvent bumps the counter for one usage event, initializing the
// user's stats row when absent.
func (r *Reconciler) RecordEvent(userID uuid.UUID, kind EventKind) error {
	var column string
	switch kind {
	case RoutineCreated:
		column = storage.StatTotalRoutines
	case SessionStarted:
		column = storage.StatTotalSessions
	case ActiveDay:
		column = storage.StatActiveDays
	default:
		return fmt.Errorf("unknown event kind: %d", kind)
	}
	return r.repo.IncrementUserStat(userID, column)
}

// Reconcile recomputes the recomputable counters from ground truth and
// stores the per-field maximum of the stored and recomputed values.
// Counters only ever move up; deletions never shrink lifetime totals.
// Active days has no ground truth to recount and passes through unchanged.
func (r *Reconciler) Reconcile(userID uuid.UUID) (*models.UserStats, error) {
	stored, err := r.repo.GetUserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	sessions, err := r.repo.CountSessions(userID)
	if err != nil {
		return nil, fmt.Errorf("recount sessions: %w", err)
	}
	routines, err := r.repo.CountRoutines(userID)
	if err != nil {
		return nil, fmt.Errorf("recount routines: %w", err)
	}
	exercises, err := r.repo.CountRoutineExercises(userID)
	if err != nil {
		return nil, fmt.Errorf("recount exercises: %w", err)
	}

	merged := &models.UserStats{
		UserID:         userID,
		TotalSessions:  max(stored.TotalSessions, sessions),
		TotalRoutines:  max(stored.TotalRoutines, routines),
		TotalExercises: max(stored.TotalExercises, exercises),
		ActiveDays:     stored.ActiveDays,
	}

	if err := r.repo.SaveUserStats(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
