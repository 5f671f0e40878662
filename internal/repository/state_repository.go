package repository

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ub0r/travellog-backend/internal/models"
)

// State keys. Values live in the app_state key/value table so that the
// debounce state and the last reported fix survive process restarts.
const (
	stateLastLevel  = "last_level"
	stateLastNotify = "last_notify"
	stateLastLat    = "last_lat"
	stateLastLon    = "last_lon"
	stateFixLat     = "fix_lat"
	stateFixLon     = "fix_lon"
	stateFixAcc     = "fix_acc"
	stateFixTime    = "fix_time"
)

// StateRepository handles the persisted cross-cycle state
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the value for a key, or "" when the key is not set
func (r *StateRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get state %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under a key, replacing any previous value
func (r *StateRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set state %q: %w", key, err)
	}
	return nil
}

// Delete removes keys; missing keys are not an error
func (r *StateRepository) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := r.db.Exec("DELETE FROM app_state WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to delete state %q: %w", key, err)
		}
	}
	return nil
}

func (r *StateRepository) getInt64(key string) (int64, error) {
	v, err := r.Get(key)
	if err != nil || v == "" {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse state %q: %w", key, err)
	}
	return n, nil
}

// WarnState returns the persisted notification level and last-notify
// timestamp; zero values when never notified.
func (r *StateRepository) WarnState() (models.Level, int64, error) {
	level, err := r.getInt64(stateLastLevel)
	if err != nil {
		return models.LevelNothing, 0, err
	}
	lastNotify, err := r.getInt64(stateLastNotify)
	if err != nil {
		return models.LevelNothing, 0, err
	}
	return models.Level(level), lastNotify, nil
}

// SetWarnState persists the notification level and last-notify timestamp
func (r *StateRepository) SetWarnState(level models.Level, lastNotify int64) error {
	if err := r.Set(stateLastLevel, strconv.FormatInt(int64(level), 10)); err != nil {
		return err
	}
	return r.Set(stateLastNotify, strconv.FormatInt(lastNotify, 10))
}

// ClearWarnState drops the persisted notification state
func (r *StateRepository) ClearWarnState() error {
	return r.Delete(stateLastLevel, stateLastNotify)
}

// SetLastChecked stores the position of the most recently compared cell
func (r *StateRepository) SetLastChecked(lat, lon int32) error {
	if err := r.Set(stateLastLat, strconv.FormatInt(int64(lat), 10)); err != nil {
		return err
	}
	return r.Set(stateLastLon, strconv.FormatInt(int64(lon), 10))
}

// LastChecked returns the position of the most recently compared cell
func (r *StateRepository) LastChecked() (lat, lon int32, err error) {
	la, err := r.getInt64(stateLastLat)
	if err != nil {
		return 0, 0, err
	}
	lo, err := r.getInt64(stateLastLon)
	if err != nil {
		return 0, 0, err
	}
	return int32(la), int32(lo), nil
}

// SetFix stores the last reported device position
func (r *StateRepository) SetFix(fix models.Fix) error {
	if err := r.Set(stateFixLat, strconv.FormatFloat(fix.Latitude, 'f', -1, 64)); err != nil {
		return err
	}
	if err := r.Set(stateFixLon, strconv.FormatFloat(fix.Longitude, 'f', -1, 64)); err != nil {
		return err
	}
	if err := r.Set(stateFixAcc, strconv.FormatFloat(fix.Accuracy, 'f', -1, 64)); err != nil {
		return err
	}
	return r.Set(stateFixTime, strconv.FormatInt(fix.Time, 10))
}

// Fix returns the last reported device position, or nil when no fix has
// been reported yet
func (r *StateRepository) Fix() (*models.Fix, error) {
	t, err := r.getInt64(stateFixTime)
	if err != nil {
		return nil, err
	}
	if t == 0 {
		return nil, nil
	}

	latStr, err := r.Get(stateFixLat)
	if err != nil {
		return nil, err
	}
	lonStr, err := r.Get(stateFixLon)
	if err != nil {
		return nil, err
	}
	accStr, err := r.Get(stateFixAcc)
	if err != nil {
		return nil, err
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fix latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fix longitude: %w", err)
	}
	acc, _ := strconv.ParseFloat(accStr, 64)

	return &models.Fix{Latitude: lat, Longitude: lon, Accuracy: acc, Time: t}, nil
}
