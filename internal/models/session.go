// ABOUTME: Session model and Status enum for in-progress workout sessions.
// ABOUTME: SessionExercise is one entry of a session's computed effective list.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the completion state of a session or of an exercise within one.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValidStatus checks if a string is a valid status value.
func IsValidStatus(s string) bool {
	return s == string(StatusPending) || s == string(StatusCompleted)
}

// Session represents a started instantiation of a routine for a user.
// Its status moves pending -> completed exactly once and never back.
type Session struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	RoutineID uuid.UUID `json:"routine_id" yaml:"routine_id"`
	UserID    uuid.UUID `json:"user_id" yaml:"user_id"`
	Status    Status    `json:"status" yaml:"status"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	RoutineName string `json:"routine_name,omitempty" yaml:"routine_name,omitempty"` // Populated on list queries
}

// NewSession creates a pending Session with generated UUID and current timestamp.
func NewSession(userID, routineID uuid.UUID) *Session {
	return &Session{
		ID:        uuid.New(),
		RoutineID: routineID,
		UserID:    userID,
		Status:    StatusPending,
		StartedAt: time.Now(),
	}
}

// SessionExercise is one row of a session's effective exercise list:
// the routine's pairing joined with the session's status overlay.
// Exercises removed from the session never appear here.
type SessionExercise struct {
	ExerciseID uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	Name       string    `json:"name" yaml:"name"`
	Sets       int       `json:"sets" yaml:"sets"`
	Reps       string    `json:"reps" yaml:"reps"`
	Status     Status    `json:"status" yaml:"status"`
}
