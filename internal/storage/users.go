// ABOUTME: User and UserDetails CRUD operations for SQLite storage.
// ABOUTME: Users are looked up by UUID, UUID prefix, or email.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlife/internal/models"
)

// CreateUser stores a new user in the database.
func (d *DB) CreateUser(u *models.User) error {
	query := `
		INSERT INTO users (user_id, email, username, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		u.ID.String(),
		u.Email,
		u.Username,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID or ID prefix.
func (d *DB) GetUser(idOrPrefix string) (*models.User, error) {
	id, err := d.resolveID("users", "user_id", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, email, username, created_at
		FROM users
		WHERE user_id = ?
	`
	return scanUser(d.db.QueryRow(query, id))
}

// GetUserByEmail retrieves a user by exact email. Returns nil when absent.
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT user_id, email, username, created_at
		FROM users
		WHERE email = ?
	`
	u, err := scanUser(d.db.QueryRow(query, email))
	if err == ErrNotFound {
		return nil, nil
	}
	return u, err
}

// ListUsers retrieves all users ordered by creation time.
func (d *DB) ListUsers() ([]*models.User, error) {
	query := `
		SELECT user_id, email, username, created_at
		FROM users
		ORDER BY created_at ASC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		var idStr, createdAt string
		var username sql.NullString

		if err := rows.Scan(&idStr, &u.Email, &username, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		u.ID, _ = uuid.Parse(idStr)
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if username.Valid {
			u.Username = &username.String
		}

		users = append(users, &u)
	}

	return users, rows.Err()
}

// UpsertUserDetails replaces the profile details row for a user.
func (d *DB) UpsertUserDetails(det *models.UserDetails) error {
	query := `
		INSERT OR REPLACE INTO user_details (user_id, age, gender, height, weight)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		det.UserID.String(),
		det.Age,
		det.Gender,
		det.Height,
		det.Weight,
	)
	if err != nil {
		return fmt.Errorf("upsert user details: %w", err)
	}
	return nil
}

// GetUserDetails retrieves the profile details for a user.
// Returns an empty details struct when none have been saved.
func (d *DB) GetUserDetails(userID uuid.UUID) (*models.UserDetails, error) {
	query := `
		SELECT age, gender, height, weight
		FROM user_details
		WHERE user_id = ?
	`
	det := &models.UserDetails{UserID: userID}
	var age sql.NullInt64
	var gender sql.NullString
	var height, weight sql.NullFloat64

	err := d.db.QueryRow(query, userID.String()).Scan(&age, &gender, &height, &weight)
	if err == sql.ErrNoRows {
		return det, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user details: %w", err)
	}

	if age.Valid {
		a := int(age.Int64)
		det.Age = &a
	}
	if gender.Valid {
		det.Gender = &gender.String
	}
	if height.Valid {
		det.Height = &height.Float64
	}
	if weight.Valid {
		det.Weight = &weight.Float64
	}

	return det, nil
}

// scanUser scans a single row into a User struct.
func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var idStr, createdAt string
	var username sql.NullString

	err := row.Scan(&idStr, &u.Email, &username, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, _ = uuid.Parse(idStr)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if username.Valid {
		u.Username = &username.String
	}

	return &u, nil
}
