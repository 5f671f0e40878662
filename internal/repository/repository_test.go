package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ub0r/travellog-backend/internal/database"
	"github.com/ub0r/travellog-backend/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// localMillis builds a timestamp on a fixed date in the local timezone so
// day bucketing is stable regardless of when the test runs.
func localMillis(t *testing.T, hour, min int) int64 {
	t.Helper()
	return time.Date(2024, time.May, 15, hour, min, 0, 0, time.Local).UnixMilli()
}

func insertLog(t *testing.T, r *LogRepository, typeID, from, to int64, byAuto bool) int64 {
	t.Helper()
	id, err := r.Insert(&models.LogEntry{
		Type:        typeID,
		From:        from,
		To:          to,
		StartByAuto: byAuto,
	})
	if err != nil {
		t.Fatalf("insert log: %v", err)
	}
	return id
}

func countLogs(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&n); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}
