// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: One unified schema for users, exercises, routines, sessions, and stats.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		username TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_details (
		user_id TEXT PRIMARY KEY,
		age INTEGER,
		gender TEXT,
		height REAL,
		weight REAL,
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	);

	CREATE TABLE IF NOT EXISTS exercises (
		exercise_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		sets INTEGER,
		reps TEXT,
		rest_time TEXT,
		image_path TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_equipment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id TEXT NOT NULL,
		equipment_name TEXT NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES exercises(exercise_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS exercise_instructions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id TEXT NOT NULL,
		instruction_text TEXT NOT NULL,
		instruction_order INTEGER NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES exercises(exercise_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS routines (
		routine_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	);

	CREATE TABLE IF NOT EXISTS routine_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		routine_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		sets INTEGER,
		reps TEXT,
		UNIQUE (routine_id, exercise_id),
		FOREIGN KEY (routine_id) REFERENCES routines(routine_id),
		FOREIGN KEY (exercise_id) REFERENCES exercises(exercise_id)
	);

	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		started_at TEXT NOT NULL,
		FOREIGN KEY (routine_id) REFERENCES routines(routine_id),
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	);

	CREATE TABLE IF NOT EXISTS session_exercise_status (
		session_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		PRIMARY KEY (session_id, exercise_id)
	);

	CREATE TABLE IF NOT EXISTS session_removed_exercises (
		session_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		PRIMARY KEY (session_id, exercise_id)
	);

	CREATE TABLE IF NOT EXISTS user_stats (
		user_id TEXT PRIMARY KEY,
		total_sessions INTEGER NOT NULL DEFAULT 0,
		total_routines INTEGER NOT NULL DEFAULT 0,
		total_exercises INTEGER NOT NULL DEFAULT 0,
		active_days INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_routines_user ON routines(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_routine_exercises_routine ON routine_exercises(routine_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_user_routine ON sessions(user_id, routine_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
