package repository

import (
	"testing"
	"time"

	"github.com/ub0r/travellog-backend/internal/models"
)

func TestInsertComputesBuckets(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	from := localMillis(t, 10, 0)
	id := insertLog(t, r, 3, from, 0, false)

	e, err := r.GetByID(id)
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if e == nil {
		t.Fatal("expected log, got nil")
	}

	wantY, wantM, wantW, wantD := models.DayBuckets(from)
	if e.FromYear != wantY || e.FromMonth != wantM || e.FromWeek != wantW || e.FromDay != wantD {
		t.Fatalf("buckets = %d/%d/%d/%d, want %d/%d/%d/%d",
			e.FromYear, e.FromMonth, e.FromWeek, e.FromDay, wantY, wantM, wantW, wantD)
	}
}

func TestInsertRequiresType(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	_, err := r.Insert(&models.LogEntry{From: localMillis(t, 10, 0)})
	if err != ErrTypeNotSet {
		t.Fatalf("expected ErrTypeNotSet, got %v", err)
	}
}

func TestInsertDefaultsFromToNow(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	before := time.Now().UnixMilli()
	id := insertLog(t, r, 3, 0, 0, true)
	after := time.Now().UnixMilli()

	e, err := r.GetByID(id)
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if e.From < before || e.From > after {
		t.Fatalf("from = %d, want between %d and %d", e.From, before, after)
	}
	if !e.StartByAuto {
		t.Fatal("expected startByAuto to be persisted")
	}
}

func TestUpdateRecomputesBuckets(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	id := insertLog(t, r, 3, localMillis(t, 10, 0), 0, false)

	newFrom := time.Date(2024, time.December, 31, 8, 0, 0, 0, time.Local).UnixMilli()
	n, err := r.Update(&models.LogEntry{ID: id, Type: 3, From: newFrom, To: 0})
	if err != nil {
		t.Fatalf("update log: %v", err)
	}
	if n != 1 {
		t.Fatalf("affected = %d, want 1", n)
	}

	e, _ := r.GetByID(id)
	wantY, wantM, wantW, wantD := models.DayBuckets(newFrom)
	if e.FromYear != wantY || e.FromMonth != wantM || e.FromWeek != wantW || e.FromDay != wantD {
		t.Fatalf("buckets not recomputed: got %d/%d/%d/%d", e.FromYear, e.FromMonth, e.FromWeek, e.FromDay)
	}
}

func TestUpdateUnknownIDAffectsNothing(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	n, err := r.Update(&models.LogEntry{ID: 999, Type: 3, From: localMillis(t, 10, 0)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 0 {
		t.Fatalf("affected = %d, want 0", n)
	}
}

func TestCloseOpenSetsGivenTimestamp(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	id := insertLog(t, r, 3, localMillis(t, 10, 0), 0, false)
	closeAt := localMillis(t, 12, 0)

	n, err := r.CloseOpen(closeAt, false)
	if err != nil {
		t.Fatalf("close open: %v", err)
	}
	if n != 1 {
		t.Fatalf("closed = %d, want 1", n)
	}

	e, _ := r.GetByID(id)
	if e.To != closeAt {
		t.Fatalf("to = %d, want %d", e.To, closeAt)
	}
}

func TestCloseOpenAutoOnlySparesManualLogs(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	manual := insertLog(t, r, 3, localMillis(t, 10, 0), 0, false)

	n, err := r.CloseOpen(localMillis(t, 11, 0), true)
	if err != nil {
		t.Fatalf("close open: %v", err)
	}
	if n != 0 {
		t.Fatalf("closed = %d, want 0: manual logs must survive", n)
	}

	e, _ := r.GetByID(manual)
	if !e.Open() {
		t.Fatal("manual log was closed by autoOnly close")
	}

	// An auto-started log is closed by the same call.
	auto := insertLog(t, r, 2, localMillis(t, 11, 30), 0, true)
	n, err = r.CloseOpen(localMillis(t, 12, 0), true)
	if err != nil {
		t.Fatalf("close open: %v", err)
	}
	if n != 1 {
		t.Fatalf("closed = %d, want 1", n)
	}
	e, _ = r.GetByID(auto)
	if e.Open() {
		t.Fatal("auto log not closed by autoOnly close")
	}
}

func TestOpenLogsAndHasOpenOfKind(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	insertLog(t, r, 3, localMillis(t, 9, 0), localMillis(t, 10, 0), false)
	insertLog(t, r, 3, localMillis(t, 10, 0), 0, true)

	open, err := r.OpenLogs()
	if err != nil {
		t.Fatalf("open logs: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open logs = %d, want 1", len(open))
	}
	if open[0].TypeKind != models.KindWork {
		t.Fatalf("open log kind = %v, want work", open[0].TypeKind)
	}

	ok, err := r.HasOpenOfKind(models.KindWork)
	if err != nil {
		t.Fatalf("has open of kind: %v", err)
	}
	if !ok {
		t.Fatal("expected open work log")
	}
	ok, _ = r.HasOpenOfKind(models.KindPause)
	if ok {
		t.Fatal("expected no open pause log")
	}
}

func TestSumDayCountsOpenEntriesToNow(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	from := localMillis(t, 10, 0)
	now := localMillis(t, 13, 0)
	insertLog(t, r, 3, from, 0, false)

	y, _, _, d := models.DayBuckets(from)
	sum, err := r.SumDay(y, d, []models.TimeKind{models.KindWork}, now)
	if err != nil {
		t.Fatalf("sum day: %v", err)
	}
	if want := now - from; sum != want {
		t.Fatalf("sum = %d, want %d", sum, want)
	}
}

func TestDaySummaries(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	hour := int64(3600 * 1000)
	start := localMillis(t, 8, 0)
	// work 2h, travel 1h, pause 0.5h, all on the same day
	insertLog(t, r, 3, start, start+2*hour, false)
	insertLog(t, r, 2, start+2*hour, start+3*hour, false)
	insertLog(t, r, 1, start+3*hour, start+3*hour+hour/2, false)

	now := localMillis(t, 20, 0)
	sums, err := r.DaySummaries(now)
	if err != nil {
		t.Fatalf("day summaries: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("summaries = %d, want 1", len(sums))
	}

	s := sums[0]
	if s.SumWork != 2*hour {
		t.Errorf("sumWork = %d, want %d", s.SumWork, 2*hour)
	}
	if s.SumTravel != hour {
		t.Errorf("sumTravel = %d, want %d", s.SumTravel, hour)
	}
	if s.SumPause != hour/2 {
		t.Errorf("sumPause = %d, want %d", s.SumPause, hour/2)
	}
	if s.From != start {
		t.Errorf("from = %d, want %d", s.From, start)
	}
	if got := s.Total(true); got != 3*hour {
		t.Errorf("total(countTravel) = %d, want %d", got, 3*hour)
	}
	if got := s.Total(false); got != 2*hour {
		t.Errorf("total(workOnly) = %d, want %d", got, 2*hour)
	}
}

func TestObserversNotifiedOnMutation(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	var calls int
	r.Observe(func() { calls++ })

	id := insertLog(t, r, 3, localMillis(t, 10, 0), 0, false)
	if calls != 1 {
		t.Fatalf("calls after insert = %d, want 1", calls)
	}

	if _, err := r.CloseOpen(localMillis(t, 11, 0), false); err != nil {
		t.Fatalf("close open: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls after close = %d, want 2", calls)
	}

	// Closing again touches nothing and must not notify.
	if _, err := r.CloseOpen(localMillis(t, 12, 0), false); err != nil {
		t.Fatalf("close open: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls after no-op close = %d, want 2", calls)
	}

	if _, err := r.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls after delete = %d, want 3", calls)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	insertLog(t, r, 3, localMillis(t, 9, 0), localMillis(t, 10, 0), false)
	insertLog(t, r, 2, localMillis(t, 10, 0), 0, true)

	n, err := r.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Fatalf("cleared = %d, want 2", n)
	}
	if countLogs(t, db) != 0 {
		t.Fatal("logs remain after clear")
	}
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)

	from := localMillis(t, 9, 0)
	insertLog(t, r, 3, from, from+1000, false)
	other := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.Local).UnixMilli()
	insertLog(t, r, 2, other, other+1000, false)

	y, _, _, d := models.DayBuckets(from)
	logs, err := r.List(models.LogFilter{Year: y, DayOfYear: d})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	if logs[0].TypeName != "Work" {
		t.Fatalf("type name = %q, want Work", logs[0].TypeName)
	}
}
