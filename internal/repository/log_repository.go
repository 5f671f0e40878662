package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ub0r/travellog-backend/internal/models"
)

// ErrTypeNotSet is returned when a log entry is inserted without a logtype.
var ErrTypeNotSet = errors.New("log type not set")

// logColumns is the joined projection used for log queries
const logColumns = `logs._id, logs._type, logs._from, logs._from_y, logs._from_m,
	logs._from_w, logs._from_d, logs._to, logs._comment, logs._startbyauto,
	COALESCE(logtypes._name, ''), COALESCE(logtypes._timetype, 0)`

const logJoin = `logs LEFT OUTER JOIN logtypes ON logs._type = logtypes._id`

// LogRepository handles database operations for log entries. Mutations
// notify registered observers so dependent aggregations recompute.
type LogRepository struct {
	db *sql.DB

	mu        sync.Mutex
	observers []func()
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Observe registers a callback invoked after every mutation.
func (r *LogRepository) Observe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

func (r *LogRepository) notifyChange() {
	r.mu.Lock()
	obs := make([]func(), len(r.observers))
	copy(obs, r.observers)
	r.mu.Unlock()
	for _, fn := range obs {
		fn()
	}
}

// Insert creates a new log entry. From defaults to now; the day-bucket
// fields are always recomputed from From. Returns the assigned id.
func (r *LogRepository) Insert(e *models.LogEntry) (int64, error) {
	if e.Type == 0 {
		return 0, ErrTypeNotSet
	}
	if e.From <= 0 {
		e.From = time.Now().UnixMilli()
	}
	e.FromYear, e.FromMonth, e.FromWeek, e.FromDay = models.DayBuckets(e.From)

	res, err := r.db.Exec(
		`INSERT INTO logs (_type, _from, _from_y, _from_m, _from_w, _from_d, _to, _comment, _startbyauto)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Type, e.From, e.FromYear, e.FromMonth, e.FromWeek, e.FromDay,
		e.To, e.Comment, e.StartByAuto)
	if err != nil {
		return 0, fmt.Errorf("failed to insert log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get log id: %w", err)
	}
	e.ID = id
	r.notifyChange()
	return id, nil
}

// Update modifies type, interval and comment of an existing entry. The
// bucket fields are recomputed from From. Unknown ids affect zero rows.
func (r *LogRepository) Update(e *models.LogEntry) (int64, error) {
	if e.Type == 0 {
		return 0, ErrTypeNotSet
	}
	y, m, w, d := models.DayBuckets(e.From)

	res, err := r.db.Exec(
		`UPDATE logs SET _type = ?, _from = ?, _from_y = ?, _from_m = ?, _from_w = ?,
			_from_d = ?, _to = ?, _comment = ? WHERE _id = ?`,
		e.Type, e.From, y, m, w, d, e.To, e.Comment, e.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update log %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if n > 0 {
		r.notifyChange()
	}
	return n, err
}

// CloseOpen closes the currently open log by setting its end timestamp.
// ts <= 0 means now. With autoOnly only automatically started logs are
// closed; manually opened logs survive a geofence exit. Returns the number
// of closed rows.
func (r *LogRepository) CloseOpen(ts int64, autoOnly bool) (int64, error) {
	if ts <= 0 {
		ts = time.Now().UnixMilli()
	}

	query := "UPDATE logs SET _to = ? WHERE _to = 0"
	if autoOnly {
		query += " AND _startbyauto = 1"
	}

	res, err := r.db.Exec(query, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to close open logs: %w", err)
	}
	n, err := res.RowsAffected()
	if n > 0 {
		r.notifyChange()
	}
	return n, err
}

// OpenNew starts a new open entry of the given logtype. ts <= 0 means now.
func (r *LogRepository) OpenNew(ts, typeID int64, byAuto bool) (int64, error) {
	return r.Insert(&models.LogEntry{
		Type:        typeID,
		From:        ts,
		To:          0,
		StartByAuto: byAuto,
	})
}

// GetByID retrieves a single entry with its logtype joined in; returns nil
// when it does not exist
func (r *LogRepository) GetByID(id int64) (*models.LogEntry, error) {
	row := r.db.QueryRow(
		"SELECT "+logColumns+" FROM "+logJoin+" WHERE logs._id = ?", id)
	e, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log %d: %w", id, err)
	}
	return e, nil
}

// List retrieves log entries newest first, optionally filtered
func (r *LogRepository) List(filter models.LogFilter) ([]models.LogEntry, error) {
	query := "SELECT " + logColumns + " FROM " + logJoin

	var conditions []string
	var args []interface{}

	if filter.Year > 0 {
		conditions = append(conditions, "logs._from_y = ?")
		args = append(args, filter.Year)
	}
	if filter.DayOfYear > 0 {
		conditions = append(conditions, "logs._from_d = ?")
		args = append(args, filter.DayOfYear)
	}
	if filter.TypeID > 0 {
		conditions = append(conditions, "logs._type = ?")
		args = append(args, filter.TypeID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY logs._from DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	return r.queryLogs(query, args...)
}

// OpenLogs retrieves all currently open entries, newest first. Under the
// close-before-open discipline this is at most one row, but the query does
// not assume it.
func (r *LogRepository) OpenLogs() ([]models.LogEntry, error) {
	return r.queryLogs(
		"SELECT " + logColumns + " FROM " + logJoin +
			" WHERE logs._to = 0 ORDER BY logs._from DESC")
}

// HasOpenOfKind reports whether an open log of the given coarse kind exists
func (r *LogRepository) HasOpenOfKind(kind models.TimeKind) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM "+logJoin+" WHERE logs._to = 0 AND logtypes._timetype = ?",
		kind).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count open logs of kind %d: %w", kind, err)
	}
	return count > 0, nil
}

// HasOpenToday reports whether an open log of one of the given kinds was
// started on the given day
func (r *LogRepository) HasOpenToday(year, dayOfYear int, kinds []models.TimeKind) (bool, error) {
	query := "SELECT COUNT(*) FROM " + logJoin +
		" WHERE logs._to = 0 AND logs._from_y = ? AND logs._from_d = ? AND " + kindsClause(kinds)
	args := []interface{}{year, dayOfYear}
	args = append(args, kindArgs(kinds)...)

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count open logs: %w", err)
	}
	return count > 0, nil
}

// SumDay returns the accumulated duration in ms of all entries of the given
// kinds on the given day. Open entries count up to now.
func (r *LogRepository) SumDay(year, dayOfYear int, kinds []models.TimeKind, now int64) (int64, error) {
	query := `SELECT COALESCE(SUM((CASE WHEN logs._to <= 0 THEN ? ELSE logs._to END) - logs._from), 0)
		FROM ` + logJoin +
		" WHERE logs._from_y = ? AND logs._from_d = ? AND " + kindsClause(kinds)
	args := []interface{}{now, year, dayOfYear}
	args = append(args, kindArgs(kinds)...)

	var sum int64
	if err := r.db.QueryRow(query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum day: %w", err)
	}
	return sum, nil
}

// DaySummaries aggregates entries per calendar day, newest day first. Open
// entries contribute up to now in the per-kind sums.
func (r *LogRepository) DaySummaries(now int64) ([]models.DaySummary, error) {
	query := `
		SELECT logs._from_y, logs._from_d, MIN(logs._from_m), MIN(logs._from_w),
			MIN(logs._from), MAX(logs._to),
			COALESCE(SUM(CASE WHEN logtypes._timetype = ? THEN (CASE WHEN logs._to <= 0 THEN ? ELSE logs._to END) - logs._from ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN logtypes._timetype = ? THEN (CASE WHEN logs._to <= 0 THEN ? ELSE logs._to END) - logs._from ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN logtypes._timetype = ? THEN (CASE WHEN logs._to <= 0 THEN ? ELSE logs._to END) - logs._from ELSE 0 END), 0)
		FROM ` + logJoin + `
		GROUP BY logs._from_y, logs._from_d
		ORDER BY MIN(logs._from) DESC`

	rows, err := r.db.Query(query,
		models.KindWork, now, models.KindTravel, now, models.KindPause, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query day summaries: %w", err)
	}
	defer rows.Close()

	var sums []models.DaySummary
	for rows.Next() {
		var s models.DaySummary
		err := rows.Scan(&s.Year, &s.DayOfYear, &s.Month, &s.Week,
			&s.From, &s.To, &s.SumWork, &s.SumTravel, &s.SumPause)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day summary: %w", err)
		}
		sums = append(sums, s)
	}

	return sums, rows.Err()
}

// Delete removes an entry; returns the number of affected rows
func (r *LogRepository) Delete(id int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM logs WHERE _id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete log %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if n > 0 {
		r.notifyChange()
	}
	return n, err
}

// Clear removes all entries; returns the number of affected rows
func (r *LogRepository) Clear() (int64, error) {
	res, err := r.db.Exec("DELETE FROM logs")
	if err != nil {
		return 0, fmt.Errorf("failed to clear logs: %w", err)
	}
	n, err := res.RowsAffected()
	if n > 0 {
		r.notifyChange()
	}
	return n, err
}

func (r *LogRepository) queryLogs(query string, args ...interface{}) ([]models.LogEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLog(row rowScanner) (*models.LogEntry, error) {
	var e models.LogEntry
	err := row.Scan(&e.ID, &e.Type, &e.From, &e.FromYear, &e.FromMonth,
		&e.FromWeek, &e.FromDay, &e.To, &e.Comment, &e.StartByAuto,
		&e.TypeName, &e.TypeKind)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func kindsClause(kinds []models.TimeKind) string {
	placeholders := make([]string, len(kinds))
	for i := range kinds {
		placeholders[i] = "?"
	}
	return "logtypes._timetype IN (" + strings.Join(placeholders, ", ") + ")"
}

func kindArgs(kinds []models.TimeKind) []interface{} {
	args := make([]interface{}, len(kinds))
	for i, k := range kinds {
		args[i] = k
	}
	return args
}
