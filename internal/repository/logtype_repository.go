package repository

import (
	"database/sql"
	"fmt"

	"github.com/ub0r/travellog-backend/internal/models"
)

// LogtypeRepository handles database operations for logtypes
type LogtypeRepository struct {
	db *sql.DB
}

// NewLogtypeRepository creates a new logtype repository
func NewLogtypeRepository(db *sql.DB) *LogtypeRepository {
	return &LogtypeRepository{db: db}
}

// List retrieves all logtypes ordered by kind, then name
func (r *LogtypeRepository) List() ([]models.Logtype, error) {
	rows, err := r.db.Query(
		"SELECT _id, _name, _timetype FROM logtypes ORDER BY _timetype ASC, _name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query logtypes: %w", err)
	}
	defer rows.Close()

	var types []models.Logtype
	for rows.Next() {
		var t models.Logtype
		if err := rows.Scan(&t.ID, &t.Name, &t.TimeKind); err != nil {
			return nil, fmt.Errorf("failed to scan logtype: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// GetByID retrieves a single logtype; returns nil when it does not exist
func (r *LogtypeRepository) GetByID(id int64) (*models.Logtype, error) {
	var t models.Logtype
	err := r.db.QueryRow(
		"SELECT _id, _name, _timetype FROM logtypes WHERE _id = ?", id).
		Scan(&t.ID, &t.Name, &t.TimeKind)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get logtype %d: %w", id, err)
	}
	return &t, nil
}

// FirstOfKind returns the first logtype of the given coarse kind, in the
// same order List uses. Returns nil when no logtype has that kind.
func (r *LogtypeRepository) FirstOfKind(kind models.TimeKind) (*models.Logtype, error) {
	var t models.Logtype
	err := r.db.QueryRow(
		"SELECT _id, _name, _timetype FROM logtypes WHERE _timetype = ? ORDER BY _timetype ASC, _name ASC LIMIT 1",
		kind).Scan(&t.ID, &t.Name, &t.TimeKind)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get logtype of kind %d: %w", kind, err)
	}
	return &t, nil
}

// Create inserts a new logtype and returns its assigned id
func (r *LogtypeRepository) Create(t *models.Logtype) (int64, error) {
	res, err := r.db.Exec(
		"INSERT INTO logtypes (_name, _timetype) VALUES (?, ?)", t.Name, t.TimeKind)
	if err != nil {
		return 0, fmt.Errorf("failed to insert logtype: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get logtype id: %w", err)
	}
	return id, nil
}

// Update modifies an existing logtype; returns the number of affected rows
func (r *LogtypeRepository) Update(t *models.Logtype) (int64, error) {
	res, err := r.db.Exec(
		"UPDATE logtypes SET _name = ?, _timetype = ? WHERE _id = ?",
		t.Name, t.TimeKind, t.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update logtype %d: %w", t.ID, err)
	}
	return res.RowsAffected()
}

// Delete removes a logtype; returns the number of affected rows
func (r *LogtypeRepository) Delete(id int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM logtypes WHERE _id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete logtype %d: %w", id, err)
	}
	return res.RowsAffected()
}
