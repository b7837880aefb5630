// ABOUTME: User and UserDetails models for account and profile data.
// ABOUTME: Credential handling is out of scope; users are identified by email.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a local account that owns routines and sessions.
type User struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Username  *string   `json:"username,omitempty" yaml:"username,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewUser creates a new User with generated UUID and current timestamp.
func NewUser(email string) *User {
	return &User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// WithUsername sets a display name on the user.
func (u *User) WithUsername(name string) *User {
	u.Username = &name
	return u
}

// UserDetails holds the profile form fields for a user.
type UserDetails struct {
	UserID uuid.UUID `json:"user_id" yaml:"user_id"`
	Age    *int      `json:"age,omitempty" yaml:"age,omitempty"`
	Gender *string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	Height *float64  `json:"height,omitempty" yaml:"height,omitempty"`
	Weight *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
}
