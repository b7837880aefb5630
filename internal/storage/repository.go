// ABOUTME: Repository interface for FitLife data storage.
// ABOUTME: Defines contract for users, exercises, routines, sessions, and stats.
package storage

import (
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
)

// Sentinel errors distinguishing non-retryable outcomes. Query operations
// resolve unknown ids to empty results instead; mutations on overlay rows
// return these so the caller can tell a bad id from a storage failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotInRoutine    = errors.New("exercise does not belong to the session's routine")
)

// Repository defines the storage interface for FitLife data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// User operations
	CreateUser(u *models.User) error
	GetUser(idOrPrefix string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	UpsertUserDetails(det *models.UserDetails) error
	GetUserDetails(userID uuid.UUID) (*models.UserDetails, error)

	// Exercise operations
	CreateExercise(e *models.Exercise) error
	GetExercise(idOrPrefix string) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	UpdateExercise(e *models.Exercise) error
	DeleteExercise(idOrPrefix string) error

	// Routine operations
	CreateRoutine(r *models.Routine) error
	GetRoutine(idOrPrefix string) (*models.Routine, error)
	ListRoutines(userID uuid.UUID) ([]*models.Routine, error)
	RenameRoutine(routineID uuid.UUID, name string) error
	DeleteRoutine(routineID uuid.UUID) error
	AddRoutineExercise(routineID, exerciseID uuid.UUID, sets int, reps string) error
	RemoveRoutineExercise(routineID, exerciseID uuid.UUID) error
	ExercisesOf(routineID uuid.UUID) ([]*models.RoutineExercise, error)

	// Session operations
	InsertSessionIfAbsent(s *models.Session) (*models.Session, error)
	GetSession(sessionID uuid.UUID) (*models.Session, error)
	ActiveSession(userID uuid.UUID) (*models.Session, error)
	ListSessions(userID uuid.UUID) ([]*models.Session, error)
	MarkSessionCompleted(sessionID uuid.UUID) error
	DeleteSession(sessionID uuid.UUID) error
	ResetAllSessions(userID uuid.UUID) error

	// Session overlay operations
	SetSessionExerciseStatus(sessionID, exerciseID uuid.UUID, status models.Status) error
	RemoveSessionExercise(sessionID, exerciseID uuid.UUID) error
	EffectiveList(sessionID uuid.UUID) ([]*models.SessionExercise, error)

	// Stats operations
	IncrementUserStat(userID uuid.UUID, column string) error
	GetUserStats(userID uuid.UUID) (*models.UserStats, error)
	SaveUserStats(st *models.UserStats) error
	CountSessions(userID uuid.UUID) (int, error)
	CountRoutines(userID uuid.UUID) (int, error)
	CountRoutineExercises(userID uuid.UUID) (int, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)
	ImportJSON(raw []byte) error

	// Lifecycle
	Close() error
}
