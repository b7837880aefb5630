// ABOUTME: Session rows plus the per-session status and removal overlays.
// ABOUTME: Overlay writes verify routine membership; multi-row deletes are transactional.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
)

// InsertSessionIfAbsent inserts a pending session unless one already exists
// for the same user and routine. When one exists it is returned and nothing
// is written; a nil return means the new session was created.
func (d *DB) InsertSessionIfAbsent(s *models.Session) (*models.Session, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		SELECT session_id, routine_id, user_id, status, started_at
		FROM sessions
		WHERE user_id = ? AND routine_id = ?
	`
	existing, err := scanSessionRow(tx.QueryRow(query, s.UserID.String(), s.RoutineID.String()))
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, routine_id, user_id, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID.String(),
		s.RoutineID.String(),
		s.UserID.String(),
		string(s.Status),
		s.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return nil, tx.Commit()
}

// GetSession retrieves a session by ID. Returns nil when absent.
func (d *DB) GetSession(sessionID uuid.UUID) (*models.Session, error) {
	query := `
		SELECT session_id, routine_id, user_id, status, started_at
		FROM sessions
		WHERE session_id = ?
	`
	s, err := scanSessionRow(d.db.QueryRow(query, sessionID.String()))
	if err == ErrNotFound {
		return nil, nil
	}
	return s, err
}

// ActiveSession returns the user's most recently started session, or nil.
// The store allows sessions over several routines at once; callers that
// assume a single current slot see only the newest.
func (d *DB) ActiveSession(userID uuid.UUID) (*models.Session, error) {
	query := `
		SELECT session_id, routine_id, user_id, status, started_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`
	s, err := scanSessionRow(d.db.QueryRow(query, userID.String()))
	if err == ErrNotFound {
		return nil, nil
	}
	return s, err
}

// ListSessions retrieves all of a user's sessions with routine names,
// most recently started first.
func (d *DB) ListSessions(userID uuid.UUID) ([]*models.Session, error) {
	query := `
		SELECT s.session_id, s.routine_id, s.user_id, s.status, s.started_at, r.name
		FROM sessions s
		INNER JOIN routines r ON s.routine_id = r.routine_id
		WHERE s.user_id = ?
		ORDER BY s.started_at DESC, s.rowid DESC
	`
	rows, err := d.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var s models.Session
		var idStr, routineIDStr, userIDStr, status, startedAt string

		if err := rows.Scan(&idStr, &routineIDStr, &userIDStr, &status, &startedAt, &s.RoutineName); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		s.ID, _ = uuid.Parse(idStr)
		s.RoutineID, _ = uuid.Parse(routineIDStr)
		s.UserID, _ = uuid.Parse(userIDStr)
		s.Status = models.Status(status)
		s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)

		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}

// MarkSessionCompleted sets a session's status to completed. Completing an
// already-completed session is a no-op; there is no way back to pending.
func (d *DB) MarkSessionCompleted(sessionID uuid.UUID) error {
	_, err := d.db.Exec(
		`UPDATE sessions SET status = ? WHERE session_id = ?`,
		string(models.StatusCompleted), sessionID.String(),
	)
	if err != nil {
		return fmt.Errorf("mark session completed: %w", err)
	}
	return nil
}

// DeleteSession removes a session and its overlay rows in one transaction,
// so a crash mid-delete cannot orphan status or removal rows.
func (d *DB) DeleteSession(sessionID uuid.UUID) error {
	id := sessionID.String()

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM session_exercise_status WHERE session_id = ?`,
		`DELETE FROM session_removed_exercises WHERE session_id = ?`,
		`DELETE FROM sessions WHERE session_id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	return tx.Commit()
}

// ResetAllSessions deletes every session for a user together with all
// overlay rows, atomically.
func (d *DB) ResetAllSessions(userID uuid.UUID) error {
	id := userID.String()

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM session_exercise_status
		 WHERE session_id IN (SELECT session_id FROM sessions WHERE user_id = ?)`,
		`DELETE FROM session_removed_exercises
		 WHERE session_id IN (SELECT session_id FROM sessions WHERE user_id = ?)`,
		`DELETE FROM sessions WHERE user_id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("reset sessions: %w", err)
		}
	}

	return tx.Commit()
}

// SetSessionExerciseStatus upserts the per-session completion status of an
// exercise. The whole read-then-write runs in one transaction: the session
// must exist and the exercise must belong to the session's routine.
func (d *DB) SetSessionExerciseStatus(sessionID, exerciseID uuid.UUID, status models.Status) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("set exercise status: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkSessionMembership(tx, sessionID, exerciseID); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO session_exercise_status (session_id, exercise_id, status) VALUES (?, ?, ?)`,
		sessionID.String(), exerciseID.String(), string(status),
	)
	if err != nil {
		return fmt.Errorf("set exercise status: %w", err)
	}

	return tx.Commit()
}

// RemoveSessionExercise hides an exercise from one session's view. The
// routine definition is never touched; removing twice is a no-op.
func (d *DB) RemoveSessionExercise(sessionID, exerciseID uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("remove session exercise: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkSessionMembership(tx, sessionID, exerciseID); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT OR IGNORE INTO session_removed_exercises (session_id, exercise_id) VALUES (?, ?)`,
		sessionID.String(), exerciseID.String(),
	)
	if err != nil {
		return fmt.Errorf("remove session exercise: %w", err)
	}

	return tx.Commit()
}

// EffectiveList computes a session's exercise view: the routine's pairings
// minus the session's removed exercises, left-joined with the status
// overlay and defaulting to pending. The view is never cached. Ordering
// follows the routine's join-table insertion order. An unknown session
// yields an empty list.
func (d *DB) EffectiveList(sessionID uuid.UUID) ([]*models.SessionExercise, error) {
	query := `
		SELECT re.exercise_id, e.name, re.sets, re.reps,
		       COALESCE(ses.status, 'pending') AS exercise_status
		FROM sessions s
		INNER JOIN routine_exercises re ON re.routine_id = s.routine_id
		INNER JOIN exercises e ON e.exercise_id = re.exercise_id
		LEFT JOIN session_exercise_status ses
		       ON ses.session_id = s.session_id AND ses.exercise_id = re.exercise_id
		WHERE s.session_id = ?
		  AND re.exercise_id NOT IN (
		      SELECT exercise_id FROM session_removed_exercises WHERE session_id = s.session_id)
		ORDER BY re.id
	`
	rows, err := d.db.Query(query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("effective list: %w", err)
	}
	defer rows.Close()

	var list []*models.SessionExercise
	for rows.Next() {
		var se models.SessionExercise
		var idStr, status string

		if err := rows.Scan(&idStr, &se.Name, &se.Sets, &se.Reps, &status); err != nil {
			return nil, fmt.Errorf("scan session exercise: %w", err)
		}

		se.ExerciseID, _ = uuid.Parse(idStr)
		se.Status = models.Status(status)

		list = append(list, &se)
	}

	return list, rows.Err()
}

// checkSessionMembership verifies, inside tx, that the session exists and
// that the exercise belongs to the session's routine. Without this check
// overlay rows could be written for exercises the session never had.
func checkSessionMembership(tx *sql.Tx, sessionID, exerciseID uuid.UUID) error {
	var routineID string
	err := tx.QueryRow(
		`SELECT routine_id FROM sessions WHERE session_id = ?`,
		sessionID.String(),
	).Scan(&routineID)
	if err == sql.ErrNoRows {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("look up session: %w", err)
	}

	var one int
	err = tx.QueryRow(
		`SELECT 1 FROM routine_exercises WHERE routine_id = ? AND exercise_id = ?`,
		routineID, exerciseID.String(),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotInRoutine
	}
	if err != nil {
		return fmt.Errorf("check routine membership: %w", err)
	}

	return nil
}

// scanSessionRow scans a single row into a Session struct.
func scanSessionRow(row *sql.Row) (*models.Session, error) {
	var s models.Session
	var idStr, routineIDStr, userIDStr, status, startedAt string

	err := row.Scan(&idStr, &routineIDStr, &userIDStr, &status, &startedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.RoutineID, _ = uuid.Parse(routineIDStr)
	s.UserID, _ = uuid.Parse(userIDStr)
	s.Status = models.Status(status)
	s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)

	return &s, nil
}
