// ABOUTME: UserStats model for incrementally maintained usage counters.
// ABOUTME: Counters are a monotonic ratchet; reconciliation never lowers them.
package models

import "github.com/google/uuid"

// UserStats holds per-user usage counters. Sessions, routines, and
// exercises are recomputable from ground truth; active days is not.
type UserStats struct {
	UserID         uuid.UUID `json:"user_id" yaml:"user_id"`
	TotalSessions  int       `json:"total_sessions" yaml:"total_sessions"`
	TotalRoutines  int       `json:"total_routines" yaml:"total_routines"`
	TotalExercises int       `json:"total_exercises" yaml:"total_exercises"`
	ActiveDays     int       `json:"active_days" yaml:"active_days"`
}
