// ABOUTME: Routine CRUD and routine-exercise pairing operations.
// ABOUTME: ExercisesOf preserves join-table insertion order, not alphabetical.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
)

// CreateRoutine stores a new routine in the database.
func (d *DB) CreateRoutine(r *models.Routine) error {
	query := `
		INSERT INTO routines (routine_id, name, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		r.ID.String(),
		r.Name,
		r.UserID.String(),
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	return nil
}

// GetRoutine retrieves a routine by ID or ID prefix.
func (d *DB) GetRoutine(idOrPrefix string) (*models.Routine, error) {
	id, err := d.resolveID("routines", "routine_id", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT routine_id, name, user_id, created_at
		FROM routines
		WHERE routine_id = ?
	`
	var r models.Routine
	var idStr, userIDStr, createdAt string

	err = d.db.QueryRow(query, id).Scan(&idStr, &r.Name, &userIDStr, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan routine: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.UserID, _ = uuid.Parse(userIDStr)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &r, nil
}

// ListRoutines retrieves a user's routines, most recently created first.
func (d *DB) ListRoutines(userID uuid.UUID) ([]*models.Routine, error) {
	query := `
		SELECT routine_id, name, user_id, created_at
		FROM routines
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := d.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var routines []*models.Routine
	for rows.Next() {
		var r models.Routine
		var idStr, userIDStr, createdAt string

		if err := rows.Scan(&idStr, &r.Name, &userIDStr, &createdAt); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}

		r.ID, _ = uuid.Parse(idStr)
		r.UserID, _ = uuid.Parse(userIDStr)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		routines = append(routines, &r)
	}

	return routines, rows.Err()
}

// RenameRoutine updates a routine's name.
func (d *DB) RenameRoutine(routineID uuid.UUID, name string) error {
	res, err := d.db.Exec(
		`UPDATE routines SET name = ? WHERE routine_id = ?`,
		name, routineID.String(),
	)
	if err != nil {
		return fmt.Errorf("rename routine: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename routine: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRoutine removes a routine, its exercise pairings, and every
// session over it together with the session overlay rows, atomically.
func (d *DB) DeleteRoutine(routineID uuid.UUID) error {
	id := routineID.String()

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM session_exercise_status
		 WHERE session_id IN (SELECT session_id FROM sessions WHERE routine_id = ?)`,
		`DELETE FROM session_removed_exercises
		 WHERE session_id IN (SELECT session_id FROM sessions WHERE routine_id = ?)`,
		`DELETE FROM sessions WHERE routine_id = ?`,
		`DELETE FROM routine_exercises WHERE routine_id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("delete routine: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM routines WHERE routine_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// AddRoutineExercise pairs an exercise with a routine, with the routine's
// sets/reps override. Re-adding an existing pairing updates the override.
func (d *DB) AddRoutineExercise(routineID, exerciseID uuid.UUID, sets int, reps string) error {
	query := `
		INSERT INTO routine_exercises (routine_id, exercise_id, sets, reps)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (routine_id, exercise_id) DO UPDATE SET sets = excluded.sets, reps = excluded.reps
	`
	_, err := d.db.Exec(query, routineID.String(), exerciseID.String(), sets, reps)
	if err != nil {
		return fmt.Errorf("add routine exercise: %w", err)
	}
	return nil
}

// RemoveRoutineExercise removes an exercise pairing from a routine.
func (d *DB) RemoveRoutineExercise(routineID, exerciseID uuid.UUID) error {
	_, err := d.db.Exec(
		`DELETE FROM routine_exercises WHERE routine_id = ? AND exercise_id = ?`,
		routineID.String(), exerciseID.String(),
	)
	if err != nil {
		return fmt.Errorf("remove routine exercise: %w", err)
	}
	return nil
}

// ExercisesOf retrieves a routine's exercises in the order they were added
// to the routine. An unknown routine yields an empty list, not an error.
func (d *DB) ExercisesOf(routineID uuid.UUID) ([]*models.RoutineExercise, error) {
	query := `
		SELECT re.exercise_id, e.name, re.sets, re.reps, e.rest_time
		FROM routine_exercises re
		INNER JOIN exercises e ON re.exercise_id = e.exercise_id
		WHERE re.routine_id = ?
		ORDER BY re.id
	`
	rows, err := d.db.Query(query, routineID.String())
	if err != nil {
		return nil, fmt.Errorf("routine exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.RoutineExercise
	for rows.Next() {
		var re models.RoutineExercise
		var idStr string
		var restTime sql.NullString

		if err := rows.Scan(&idStr, &re.Name, &re.Sets, &re.Reps, &restTime); err != nil {
			return nil, fmt.Errorf("scan routine exercise: %w", err)
		}

		re.ExerciseID, _ = uuid.Parse(idStr)
		if restTime.Valid {
			re.RestTime = &restTime.String
		}

		exercises = append(exercises, &re)
	}

	return exercises, rows.Err()
}
