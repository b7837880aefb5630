// ABOUTME: Exercise CRUD operations with equipment and instruction child rows.
// ABOUTME: Updates replace the child rows wholesale; deletes cascade everywhere.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
)

// CreateExercise stores a new exercise with its equipment and instructions.
func (d *DB) CreateExercise(e *models.Exercise) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO exercises (exercise_id, name, sets, reps, rest_time, image_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		e.ID.String(),
		e.Name,
		e.Sets,
		e.Reps,
		e.RestTime,
		e.ImagePath,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}

	if err := insertExerciseChildren(tx, e); err != nil {
		return err
	}

	return tx.Commit()
}

// GetExercise retrieves an exercise by ID or ID prefix, with its
// equipment list and ordered instructions.
func (d *DB) GetExercise(idOrPrefix string) (*models.Exercise, error) {
	id, err := d.resolveID("exercises", "exercise_id", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT exercise_id, name, sets, reps, rest_time, image_path, created_at
		FROM exercises
		WHERE exercise_id = ?
	`
	e, err := scanExercise(d.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	if e.Equipment, err = d.exerciseEquipment(id); err != nil {
		return nil, err
	}
	if e.Instructions, err = d.exerciseInstructions(id); err != nil {
		return nil, err
	}

	return e, nil
}

// ListExercises retrieves all exercises ordered by name, without child rows.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	query := `
		SELECT exercise_id, name, sets, reps, rest_time, image_path, created_at
		FROM exercises
		ORDER BY name ASC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExerciseRow(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}

// UpdateExercise updates an exercise and replaces its equipment and
// instruction rows with the ones on the model.
func (d *DB) UpdateExercise(e *models.Exercise) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE exercises
		SET name = ?, sets = ?, reps = ?, rest_time = ?, image_path = ?
		WHERE exercise_id = ?
	`
	res, err := tx.Exec(query, e.Name, e.Sets, e.Reps, e.RestTime, e.ImagePath, e.ID.String())
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	id := e.ID.String()
	if _, err := tx.Exec(`DELETE FROM exercise_equipment WHERE exercise_id = ?`, id); err != nil {
		return fmt.Errorf("clear exercise equipment: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM exercise_instructions WHERE exercise_id = ?`, id); err != nil {
		return fmt.Errorf("clear exercise instructions: %w", err)
	}
	if err := insertExerciseChildren(tx, e); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteExercise removes an exercise, its child rows, and any routine
// pairings that reference it, in one transaction.
func (d *DB) DeleteExercise(idOrPrefix string) error {
	id, err := d.resolveID("exercises", "exercise_id", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM exercise_equipment WHERE exercise_id = ?`,
		`DELETE FROM exercise_instructions WHERE exercise_id = ?`,
		`DELETE FROM routine_exercises WHERE exercise_id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM exercises WHERE exercise_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// insertExerciseChildren inserts equipment and instruction rows within tx.
func insertExerciseChildren(tx *sql.Tx, e *models.Exercise) error {
	for _, eq := range e.Equipment {
		_, err := tx.Exec(
			`INSERT INTO exercise_equipment (exercise_id, equipment_name) VALUES (?, ?)`,
			e.ID.String(), eq,
		)
		if err != nil {
			return fmt.Errorf("insert exercise equipment: %w", err)
		}
	}
	for i, inst := range e.Instructions {
		_, err := tx.Exec(
			`INSERT INTO exercise_instructions (exercise_id, instruction_text, instruction_order) VALUES (?, ?, ?)`,
			e.ID.String(), inst, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert exercise instruction: %w", err)
		}
	}
	return nil
}

// exerciseEquipment loads the equipment names for an exercise.
func (d *DB) exerciseEquipment(exerciseID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT equipment_name FROM exercise_equipment WHERE exercise_id = ?`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercise equipment: %w", err)
	}
	defer rows.Close()

	var equipment []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		equipment = append(equipment, name)
	}
	return equipment, rows.Err()
}

// exerciseInstructions loads the instructions for an exercise in order.
func (d *DB) exerciseInstructions(exerciseID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT instruction_text FROM exercise_instructions WHERE exercise_id = ? ORDER BY instruction_order ASC`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercise instructions: %w", err)
	}
	defer rows.Close()

	var instructions []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan instruction: %w", err)
		}
		instructions = append(instructions, text)
	}
	return instructions, rows.Err()
}

// scanExercise scans a single row into an Exercise struct.
func scanExercise(row *sql.Row) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, createdAt string
	var restTime, imagePath sql.NullString

	err := row.Scan(&idStr, &e.Name, &e.Sets, &e.Reps, &restTime, &imagePath, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if restTime.Valid {
		e.RestTime = &restTime.String
	}
	if imagePath.Valid {
		e.ImagePath = &imagePath.String
	}

	return &e, nil
}

// scanExerciseRow scans one of multiple rows into an Exercise struct.
func scanExerciseRow(rows *sql.Rows) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, createdAt string
	var restTime, imagePath sql.NullString

	err := rows.Scan(&idStr, &e.Name, &e.Sets, &e.Reps, &restTime, &imagePath, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if restTime.Valid {
		e.RestTime = &restTime.String
	}
	if imagePath.Valid {
		e.ImagePath = &imagePath.String
	}

	return &e, nil
}
