package models

// CoordScale converts between degrees and the scaled integer representation
// used for persisted cell coordinates (degrees × 1e6).
const CoordScale = 1e6

// Cell represents a stored geofence: a center, a radius, and the kind of
// log it triggers when the reported position falls inside
type Cell struct {
	ID        int64    `json:"id" db:"_id"`
	Latitude  int32    `json:"latitude" db:"_latitude"`   // degrees × 1e6
	Longitude int32    `json:"longitude" db:"_longitude"` // degrees × 1e6
	Type      TimeKind `json:"type" db:"_type"`
	Radius    int32    `json:"radius" db:"_radius"` // meters
	SeenFirst int64    `json:"seenFirst" db:"_seen_first"`
	SeenLast  int64    `json:"seenLast" db:"_seen_last"`
}

// LatDegrees returns the cell center latitude in degrees.
func (c *Cell) LatDegrees() float64 {
	return float64(c.Latitude) / CoordScale
}

// LonDegrees returns the cell center longitude in degrees.
func (c *Cell) LonDegrees() float64 {
	return float64(c.Longitude) / CoordScale
}

// Fix is a reported device position in degrees.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"` // meters, 0 if unknown
	Time      int64   `json:"time"`               // ms since epoch
}
