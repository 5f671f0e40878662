package repository

import (
	"testing"

	"github.com/ub0r/travellog-backend/internal/models"
)

func TestWarnStateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	r := NewStateRepository(db)

	level, lastNotify, err := r.WarnState()
	if err != nil {
		t.Fatalf("warn state: %v", err)
	}
	if level != models.LevelNothing || lastNotify != 0 {
		t.Fatalf("fresh state = %v/%d, want nothing/0", level, lastNotify)
	}

	if err := r.SetWarnState(models.LevelWarn, 12345); err != nil {
		t.Fatalf("set warn state: %v", err)
	}
	level, lastNotify, _ = r.WarnState()
	if level != models.LevelWarn || lastNotify != 12345 {
		t.Fatalf("state = %v/%d, want warn/12345", level, lastNotify)
	}

	if err := r.ClearWarnState(); err != nil {
		t.Fatalf("clear warn state: %v", err)
	}
	level, lastNotify, _ = r.WarnState()
	if level != models.LevelNothing || lastNotify != 0 {
		t.Fatalf("cleared state = %v/%d, want nothing/0", level, lastNotify)
	}
}

func TestFixRoundTrip(t *testing.T) {
	db := newTestDB(t)
	r := NewStateRepository(db)

	fix, err := r.Fix()
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if fix != nil {
		t.Fatalf("expected no fix, got %+v", fix)
	}

	want := models.Fix{Latitude: 52.52, Longitude: 13.405, Accuracy: 30, Time: 1700000000000}
	if err := r.SetFix(want); err != nil {
		t.Fatalf("set fix: %v", err)
	}

	fix, err = r.Fix()
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if fix == nil {
		t.Fatal("expected fix, got nil")
	}
	if *fix != want {
		t.Fatalf("fix = %+v, want %+v", *fix, want)
	}
}

func TestLastCheckedRoundTrip(t *testing.T) {
	db := newTestDB(t)
	r := NewStateRepository(db)

	if err := r.SetLastChecked(52520000, 13405000); err != nil {
		t.Fatalf("set last checked: %v", err)
	}
	lat, lon, err := r.LastChecked()
	if err != nil {
		t.Fatalf("last checked: %v", err)
	}
	if lat != 52520000 || lon != 13405000 {
		t.Fatalf("last checked = %d/%d, want 52520000/13405000", lat, lon)
	}
}
