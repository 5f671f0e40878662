package service

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/ub0r/travellog-backend/internal/config"
	"github.com/ub0r/travellog-backend/internal/database"
	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/notify"
	"github.com/ub0r/travellog-backend/internal/repository"
)

// testEnv wires a full service stack on an in-memory database.
type testEnv struct {
	db       *sql.DB
	cells    *repository.CellRepository
	logs     *repository.LogRepository
	logtypes *repository.LogtypeRepository
	state    *repository.StateRepository
	notifier *notify.FakeNotifier
	cfg      *config.Config
	monitor  *MonitorService
	checker  *CheckerService
	lock     *sync.Mutex
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:       db,
		cells:    repository.NewCellRepository(db),
		logs:     repository.NewLogRepository(db),
		logtypes: repository.NewLogtypeRepository(db),
		state:    repository.NewStateRepository(db),
		notifier: notify.NewFakeNotifier(),
		cfg:      &config.Config{},
		lock:     &sync.Mutex{},
	}
	env.monitor = NewMonitorService(env.logs, env.state, env.notifier, env.cfg)
	env.checker = NewCheckerService(env.cells, env.logs, env.logtypes, env.state, env.monitor, env.lock)
	return env
}

// Berlin, scaled ×1e6. All geofence tests hang off this point.
const (
	baseLat = 52520000
	baseLon = 13405000
)

func (env *testEnv) addCell(t *testing.T, lat, lon int32, kind models.TimeKind, radius int32) int64 {
	t.Helper()
	id, err := env.cells.Create(&models.Cell{
		Latitude:  lat,
		Longitude: lon,
		Type:      kind,
		Radius:    radius,
	})
	if err != nil {
		t.Fatalf("create cell: %v", err)
	}
	return id
}

func (env *testEnv) setFix(t *testing.T, lat, lon float64, at int64) {
	t.Helper()
	err := env.state.SetFix(models.Fix{Latitude: lat, Longitude: lon, Time: at})
	if err != nil {
		t.Fatalf("set fix: %v", err)
	}
}

func (env *testEnv) openLogs(t *testing.T) []models.LogEntry {
	t.Helper()
	open, err := env.logs.OpenLogs()
	if err != nil {
		t.Fatalf("open logs: %v", err)
	}
	return open
}

// testNow is a fixed evening timestamp in the local timezone so that
// durations up to 9h stay within one calendar day.
func testNow(t *testing.T) int64 {
	t.Helper()
	return time.Date(2024, time.May, 15, 20, 0, 0, 0, time.Local).UnixMilli()
}
