package models

// DaySummary aggregates all log entries of one calendar day. Open entries
// contribute up to "now" at query time.
type DaySummary struct {
	Year      int   `json:"year" db:"_from_y"`
	DayOfYear int   `json:"dayOfYear" db:"_from_d"`
	Month     int   `json:"month" db:"_from_m"`
	Week      int   `json:"week" db:"_from_w"`
	From      int64 `json:"from" db:"_from"`         // min(from) of the day
	To        int64 `json:"to" db:"_to"`             // max(to) of the day, 0 if a log is open
	SumWork   int64 `json:"sumWork" db:"_sum_work"`  // ms
	SumTravel int64 `json:"sumTravel" db:"_sum_travel"`
	SumPause  int64 `json:"sumPause" db:"_sum_pause"`
}

// Total returns the tracked time counted against the daily limits.
func (s *DaySummary) Total(countTravel bool) int64 {
	if countTravel {
		return s.SumWork + s.SumTravel
	}
	return s.SumWork
}

// Level is the notification severity tier derived from the accumulated
// daily duration.
type Level int

const (
	LevelNothing Level = 0
	LevelWarn    Level = 1
	LevelAlert   Level = 2
)

// String returns a display name for the level.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelAlert:
		return "alert"
	default:
		return "nothing"
	}
}
