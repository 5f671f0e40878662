package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tol                    float64
	}{
		{"same point", 52.52, 13.405, 52.52, 13.405, 0, 0.001},
		{"one degree latitude", 52.0, 13.405, 53.0, 13.405, 111195, 200},
		{"berlin to potsdam", 52.52437, 13.41053, 52.39886, 13.06566, 27000, 1500},
	}
	for _, tc := range cases {
		got := HaversineDistance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		if math.Abs(got-tc.want) > tc.tol {
			t.Errorf("%s: distance = %.1f, want %.1f ± %.1f", tc.name, got, tc.want, tc.tol)
		}
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	a := HaversineDistance(52.52, 13.405, 48.137, 11.576)
	b := HaversineDistance(48.137, 11.576, 52.52, 13.405)
	if math.Abs(a-b) > 1e-6 {
		t.Fatalf("asymmetric: %f vs %f", a, b)
	}
}
