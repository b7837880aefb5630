// ABOUTME: Routine and RoutineExercise models for workout routine definitions.
// ABOUTME: RoutineExercise is the join row pairing a routine with an exercise.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Routine represents a named workout routine owned by a user.
type Routine struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	UserID    uuid.UUID `json:"user_id" yaml:"user_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewRoutine creates a new Routine with generated UUID and current timestamp.
func NewRoutine(name string, userID uuid.UUID) *Routine {
	return &Routine{
		ID:        uuid.New(),
		Name:      name,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

// RoutineExercise is an exercise as it appears inside a routine, with the
// routine's sets/reps override applied. RestTime comes from the exercise.
type RoutineExercise struct {
	ExerciseID uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	Name       string    `json:"name" yaml:"name"`
	Sets       int       `json:"sets" yaml:"sets"`
	Reps       string    `json:"reps" yaml:"reps"`
	RestTime   *string   `json:"rest_time,omitempty" yaml:"rest_time,omitempty"`
}
