package service

import (
	"testing"

	"github.com/ub0r/travellog-backend/internal/models"
)

func TestCellValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCellService(env.cells)

	valid := &models.Cell{Latitude: baseLat, Longitude: baseLon, Type: models.KindWork, Radius: 100}
	id, err := svc.Create(valid)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name string
		cell models.Cell
	}{
		{"negative radius", models.Cell{Latitude: baseLat, Longitude: baseLon, Type: models.KindWork, Radius: -1}},
		{"latitude out of range", models.Cell{Latitude: 91 * models.CoordScale, Longitude: baseLon, Radius: 10}},
		{"longitude out of range", models.Cell{Latitude: baseLat, Longitude: -181 * models.CoordScale, Radius: 10}},
		{"bad kind", models.Cell{Latitude: baseLat, Longitude: baseLon, Type: 7, Radius: 10}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(&tc.cell); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	// Untyped cells are allowed; they only close the open log on match.
	if _, err := svc.Create(&models.Cell{Latitude: baseLat, Longitude: baseLon, Radius: 50}); err != nil {
		t.Fatalf("create untyped: %v", err)
	}

	if n, err := svc.Delete(id); err != nil || n != 1 {
		t.Fatalf("delete: n=%d err=%v", n, err)
	}
}

func TestLogtypeDeleteKeepsLastOfKind(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLogtypeService(env.logtypes)

	types, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(types) != 3 {
		t.Fatalf("seeded types = %d, want 3", len(types))
	}

	var workID int64
	for _, lt := range types {
		if lt.TimeKind == models.KindWork {
			workID = lt.ID
		}
	}

	// The only entry of its kind must stay.
	if _, err := svc.Delete(workID); err == nil {
		t.Fatal("expected error deleting last logtype of a kind")
	}

	// With a second work type the first becomes deletable.
	if _, err := svc.Create(&models.Logtype{Name: "Office", TimeKind: models.KindWork}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if n, err := svc.Delete(workID); err != nil || n != 1 {
		t.Fatalf("delete: n=%d err=%v", n, err)
	}
}

func TestLogtypeCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLogtypeService(env.logtypes)

	if _, err := svc.Create(&models.Logtype{Name: "", TimeKind: models.KindWork}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := svc.Create(&models.Logtype{Name: "X", TimeKind: 9}); err == nil {
		t.Fatal("expected error for invalid kind")
	}
}
