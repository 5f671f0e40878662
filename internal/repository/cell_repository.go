package repository

import (
	"database/sql"
	"fmt"

	"github.com/ub0r/travellog-backend/internal/models"
)

// CellRepository handles database operations for geofence cells
type CellRepository struct {
	db *sql.DB
}

// NewCellRepository creates a new cell repository
func NewCellRepository(db *sql.DB) *CellRepository {
	return &CellRepository{db: db}
}

// List retrieves all cells in storage order. The matcher depends on this
// order: the first cell containing the fix wins.
func (r *CellRepository) List() ([]models.Cell, error) {
	rows, err := r.db.Query(
		`SELECT _id, _latitude, _longitude, _type, _radius, _seen_first, _seen_last
		 FROM cells ORDER BY _id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	var cells []models.Cell
	for rows.Next() {
		var c models.Cell
		err := rows.Scan(&c.ID, &c.Latitude, &c.Longitude, &c.Type, &c.Radius,
			&c.SeenFirst, &c.SeenLast)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		cells = append(cells, c)
	}

	return cells, rows.Err()
}

// GetByID retrieves a single cell; returns nil when it does not exist
func (r *CellRepository) GetByID(id int64) (*models.Cell, error) {
	var c models.Cell
	err := r.db.QueryRow(
		`SELECT _id, _latitude, _longitude, _type, _radius, _seen_first, _seen_last
		 FROM cells WHERE _id = ?`, id).
		Scan(&c.ID, &c.Latitude, &c.Longitude, &c.Type, &c.Radius,
			&c.SeenFirst, &c.SeenLast)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cell %d: %w", id, err)
	}
	return &c, nil
}

// Create inserts a new cell and returns its assigned id
func (r *CellRepository) Create(c *models.Cell) (int64, error) {
	res, err := r.db.Exec(
		`INSERT INTO cells (_latitude, _longitude, _type, _radius, _seen_first, _seen_last)
		 VALUES (?, ?, ?, ?, 0, 0)`,
		c.Latitude, c.Longitude, c.Type, c.Radius)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cell: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get cell id: %w", err)
	}
	return id, nil
}

// Update modifies a cell's definition; returns the number of affected rows
func (r *CellRepository) Update(c *models.Cell) (int64, error) {
	res, err := r.db.Exec(
		`UPDATE cells SET _latitude = ?, _longitude = ?, _type = ?, _radius = ? WHERE _id = ?`,
		c.Latitude, c.Longitude, c.Type, c.Radius, c.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update cell %d: %w", c.ID, err)
	}
	return res.RowsAffected()
}

// TouchSeen stamps seen_last with now; seen_first is set too when the cell
// has never matched before.
func (r *CellRepository) TouchSeen(id, now int64) error {
	_, err := r.db.Exec(
		`UPDATE cells SET _seen_last = ?,
			_seen_first = CASE WHEN _seen_first <= 0 THEN ? ELSE _seen_first END
		 WHERE _id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to touch cell %d: %w", id, err)
	}
	return nil
}

// Delete removes a cell; returns the number of affected rows
func (r *CellRepository) Delete(id int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM cells WHERE _id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cell %d: %w", id, err)
	}
	return res.RowsAffected()
}
