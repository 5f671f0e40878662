package models

// TimeKind is the coarse category a Logtype belongs to. Cells store a
// TimeKind as their trigger type; KindNone on a cell means "close whatever
// is open, open nothing".
type TimeKind int

const (
	KindNone   TimeKind = 0
	KindPause  TimeKind = 1
	KindTravel TimeKind = 2
	KindWork   TimeKind = 3
)

// Valid reports whether k is one of the three real kinds.
func (k TimeKind) Valid() bool {
	return k == KindPause || k == KindTravel || k == KindWork
}

// String returns a display name for the kind.
func (k TimeKind) String() string {
	switch k {
	case KindPause:
		return "pause"
	case KindTravel:
		return "travel"
	case KindWork:
		return "work"
	default:
		return "none"
	}
}

// Logtype represents a named category of logged time
type Logtype struct {
	ID       int64    `json:"id" db:"_id"`
	Name     string   `json:"name" db:"_name"`
	TimeKind TimeKind `json:"timeKind" db:"_timetype"`
}
