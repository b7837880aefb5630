// ABOUTME: user_stats counter row operations and ground-truth recounts.
// ABOUTME: Increment initializes the row when absent, then bumps one column.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
)

// Stat columns that IncrementUserStat accepts.
const (
	StatTotalSessions  = "total_sessions"
	StatTotalRoutines  = "total_routines"
	StatTotalExercises = "total_exercises"
	StatActiveDays     = "active_days"
)

// IncrementUserStat initializes the user's stats row if absent, then
// increments one counter, as a single transaction.
func (d *DB) IncrementUserStat(userID uuid.UUID, column string) error {
	switch column {
	case StatTotalSessions, StatTotalRoutines, StatTotalExercises, StatActiveDays:
	default:
		return fmt.Errorf("unknown stat column: %s", column)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("increment stat: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO user_stats (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`,
		userID.String(),
	)
	if err != nil {
		return fmt.Errorf("init stats row: %w", err)
	}

	// column is validated above; never caller-supplied SQL
	query := fmt.Sprintf(`UPDATE user_stats SET %s = %s + 1 WHERE user_id = ?`, column, column)
	if _, err := tx.Exec(query, userID.String()); err != nil {
		return fmt.Errorf("increment stat: %w", err)
	}

	return tx.Commit()
}

// GetUserStats reads the stored counters for a user. A user with no stats
// row gets all-zero counters.
func (d *DB) GetUserStats(userID uuid.UUID) (*models.UserStats, error) {
	stats := &models.UserStats{UserID: userID}

	query := `
		SELECT total_sessions, total_routines, total_exercises, active_days
		FROM user_stats
		WHERE user_id = ?
	`
	err := d.db.QueryRow(query, userID.String()).Scan(
		&stats.TotalSessions,
		&stats.TotalRoutines,
		&stats.TotalExercises,
		&stats.ActiveDays,
	)
	if err == sql.ErrNoRows {
		return stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	return stats, nil
}

// SaveUserStats writes a full stats row, replacing whatever is stored.
func (d *DB) SaveUserStats(st *models.UserStats) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO user_stats (user_id, total_sessions, total_routines, total_exercises, active_days)
		 VALUES (?, ?, ?, ?, ?)`,
		st.UserID.String(), st.TotalSessions, st.TotalRoutines, st.TotalExercises, st.ActiveDays,
	)
	if err != nil {
		return fmt.Errorf("save user stats: %w", err)
	}
	return nil
}

// CountSessions recounts the user's session rows from ground truth.
func (d *DB) CountSessions(userID uuid.UUID) (int, error) {
	return d.countOne(
		`SELECT COUNT(*) FROM sessions WHERE user_id = ?`,
		userID,
	)
}

// CountRoutines recounts the user's routine rows from ground truth.
func (d *DB) CountRoutines(userID uuid.UUID) (int, error) {
	return d.countOne(
		`SELECT COUNT(*) FROM routines WHERE user_id = ?`,
		userID,
	)
}

// CountRoutineExercises recounts the distinct exercises reachable through
// the user's routines.
func (d *DB) CountRoutineExercises(userID uuid.UUID) (int, error) {
	return d.countOne(
		`SELECT COUNT(DISTINCT re.exercise_id)
		 FROM routine_exercises re
		 INNER JOIN routines r ON re.routine_id = r.routine_id
		 WHERE r.user_id = ?`,
		userID,
	)
}

func (d *DB) countOne(query string, userID uuid.UUID) (int, error) {
	var n int
	if err := d.db.QueryRow(query, userID.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
