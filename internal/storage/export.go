// ABOUTME: Export and import functionality for FitLife data.
// ABOUTME: Supports JSON and YAML export, and JSON import.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for FitLife data.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Users      []*models.User     `json:"users" yaml:"users"`
	Exercises  []*models.Exercise `json:"exercises" yaml:"exercises"`
	Routines   []ExportRoutine    `json:"routines" yaml:"routines"`
	Sessions   []ExportSession    `json:"sessions" yaml:"sessions"`
	Stats      []*models.UserStats `json:"stats" yaml:"stats"`
}

// ExportRoutine is a routine together with its exercise pairings.
type ExportRoutine struct {
	ID        uuid.UUID       `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	UserID    uuid.UUID       `json:"user_id" yaml:"user_id"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Exercises []ExportPairing `json:"exercises" yaml:"exercises"`
}

// ExportPairing is one routine-exercise pairing with its override.
type ExportPairing struct {
	ExerciseID uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	Sets       int       `json:"sets" yaml:"sets"`
	Reps       string    `json:"reps" yaml:"reps"`
}

// ExportSession is a session together with its overlay rows.
type ExportSession struct {
	ID        uuid.UUID           `json:"id" yaml:"id"`
	RoutineID uuid.UUID           `json:"routine_id" yaml:"routine_id"`
	UserID    uuid.UUID           `json:"user_id" yaml:"user_id"`
	Status    models.Status       `json:"status" yaml:"status"`
	StartedAt time.Time           `json:"started_at" yaml:"started_at"`
	Statuses  []ExportOverlayRow  `json:"exercise_statuses" yaml:"exercise_statuses"`
	Removed   []uuid.UUID         `json:"removed_exercises" yaml:"removed_exercises"`
}

// ExportOverlayRow is one explicit per-exercise status entry.
type ExportOverlayRow struct {
	ExerciseID uuid.UUID     `json:"exercise_id" yaml:"exercise_id"`
	Status     models.Status `json:"status" yaml:"status"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	users, err := d.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	listed, err := d.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	// Reload each exercise with its equipment and instruction rows
	exercises := make([]*models.Exercise, 0, len(listed))
	for _, e := range listed {
		full, err := d.GetExercise(e.ID.String())
		if err != nil {
			return nil, fmt.Errorf("get exercise %s: %w", e.ID, err)
		}
		exercises = append(exercises, full)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fitlife",
		Users:      users,
		Exercises:  exercises,
	}

	for _, u := range users {
		routines, err := d.ListRoutines(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list routines: %w", err)
		}
		for _, r := range routines {
			er := ExportRoutine{
				ID:        r.ID,
				Name:      r.Name,
				UserID:    r.UserID,
				CreatedAt: r.CreatedAt,
			}
			pairings, err := d.routinePairings(r.ID)
			if err != nil {
				return nil, err
			}
			er.Exercises = pairings
			data.Routines = append(data.Routines, er)
		}

		sessions, err := d.ListSessions(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		for _, s := range sessions {
			es := ExportSession{
				ID:        s.ID,
				RoutineID: s.RoutineID,
				UserID:    s.UserID,
				Status:    s.Status,
				StartedAt: s.StartedAt,
			}
			if es.Statuses, es.Removed, err = d.sessionOverlays(s.ID); err != nil {
				return nil, err
			}
			data.Sessions = append(data.Sessions, es)
		}

		stats, err := d.GetUserStats(u.ID)
		if err != nil {
			return nil, err
		}
		data.Stats = append(data.Stats, stats)
	}

	return data, nil
}

// ImportData imports data from an export file. The destination should be
// empty; rows are written through the same paths normal writes use.
func (d *DB) ImportData(data *ExportData) error {
	for _, u := range data.Users {
		if err := d.CreateUser(u); err != nil {
			return fmt.Errorf("import user %s: %w", u.ID, err)
		}
	}
	for _, e := range data.Exercises {
		if err := d.CreateExercise(e); err != nil {
			return fmt.Errorf("import exercise %s: %w", e.ID, err)
		}
	}
	for _, r := range data.Routines {
		routine := &models.Routine{ID: r.ID, Name: r.Name, UserID: r.UserID, CreatedAt: r.CreatedAt}
		if err := d.CreateRoutine(routine); err != nil {
			return fmt.Errorf("import routine %s: %w", r.ID, err)
		}
		for _, p := range r.Exercises {
			if err := d.AddRoutineExercise(r.ID, p.ExerciseID, p.Sets, p.Reps); err != nil {
				return fmt.Errorf("import routine pairing: %w", err)
			}
		}
	}
	for _, s := range data.Sessions {
		session := &models.Session{
			ID:        s.ID,
			RoutineID: s.RoutineID,
			UserID:    s.UserID,
			Status:    s.Status,
			StartedAt: s.StartedAt,
		}
		if existing, err := d.InsertSessionIfAbsent(session); err != nil {
			return fmt.Errorf("import session %s: %w", s.ID, err)
		} else if existing != nil {
			continue
		}
		for _, row := range s.Statuses {
			if err := d.SetSessionExerciseStatus(s.ID, row.ExerciseID, row.Status); err != nil {
				return fmt.Errorf("import exercise status: %w", err)
			}
		}
		for _, exID := range s.Removed {
			if err := d.RemoveSessionExercise(s.ID, exID); err != nil {
				return fmt.Errorf("import removed exercise: %w", err)
			}
		}
	}
	for _, st := range data.Stats {
		if err := d.SaveUserStats(st); err != nil {
			return fmt.Errorf("import stats: %w", err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(&data)
}

// routinePairings reads the raw pairing rows for one routine.
func (d *DB) routinePairings(routineID uuid.UUID) ([]ExportPairing, error) {
	rows, err := d.db.Query(
		`SELECT exercise_id, sets, reps FROM routine_exercises WHERE routine_id = ? ORDER BY id`,
		routineID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("routine pairings: %w", err)
	}
	defer rows.Close()

	var pairings []ExportPairing
	for rows.Next() {
		var p ExportPairing
		var idStr string
		if err := rows.Scan(&idStr, &p.Sets, &p.Reps); err != nil {
			return nil, fmt.Errorf("scan pairing: %w", err)
		}
		p.ExerciseID, _ = uuid.Parse(idStr)
		pairings = append(pairings, p)
	}
	return pairings, rows.Err()
}

// sessionOverlays reads the raw overlay rows for one session.
func (d *DB) sessionOverlays(sessionID uuid.UUID) ([]ExportOverlayRow, []uuid.UUID, error) {
	rows, err := d.db.Query(
		`SELECT exercise_id, status FROM session_exercise_status WHERE session_id = ?`,
		sessionID.String(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("session statuses: %w", err)
	}
	defer rows.Close()

	var statuses []ExportOverlayRow
	for rows.Next() {
		var row ExportOverlayRow
		var idStr, status string
		if err := rows.Scan(&idStr, &status); err != nil {
			return nil, nil, fmt.Errorf("scan status row: %w", err)
		}
		row.ExerciseID, _ = uuid.Parse(idStr)
		row.Status = models.Status(status)
		statuses = append(statuses, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	removedRows, err := d.db.Query(
		`SELECT exercise_id FROM session_removed_exercises WHERE session_id = ?`,
		sessionID.String(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("session removed: %w", err)
	}
	defer removedRows.Close()

	var removed []uuid.UUID
	for removedRows.Next() {
		var idStr string
		if err := removedRows.Scan(&idStr); err != nil {
			return nil, nil, fmt.Errorf("scan removed row: %w", err)
		}
		id, _ := uuid.Parse(idStr)
		removed = append(removed, id)
	}
	return statuses, removed, removedRows.Err()
}
