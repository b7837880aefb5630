// ABOUTME: Exercise model with equipment and ordered instruction lists.
// ABOUTME: Default sets/reps live here; routines may override per pairing.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise represents a reusable exercise definition.
type Exercise struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Sets         int       `json:"sets" yaml:"sets"`
	Reps         string    `json:"reps" yaml:"reps"`
	RestTime     *string   `json:"rest_time,omitempty" yaml:"rest_time,omitempty"`
	ImagePath    *string   `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Equipment    []string  `json:"equipment,omitempty" yaml:"equipment,omitempty"`   // unordered
	Instructions []string  `json:"instructions,omitempty" yaml:"instructions,omitempty"` // ordered
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// NewExercise creates a new Exercise with generated UUID and current timestamp.
func NewExercise(name string, sets int, reps string) *Exercise {
	return &Exercise{
		ID:        uuid.New(),
		Name:      name,
		Sets:      sets,
		Reps:      reps,
		CreatedAt: time.Now(),
	}
}

// WithRestTime sets the rest time between sets.
func (e *Exercise) WithRestTime(rest string) *Exercise {
	e.RestTime = &rest
	return e
}

// WithImagePath sets an image reference.
func (e *Exercise) WithImagePath(path string) *Exercise {
	e.ImagePath = &path
	return e
}

// WithEquipment sets the equipment list.
func (e *Exercise) WithEquipment(equipment ...string) *Exercise {
	e.Equipment = equipment
	return e
}

// WithInstructions sets the ordered instruction list.
func (e *Exercise) WithInstructions(instructions ...string) *Exercise {
	e.Instructions = instructions
	return e
}
