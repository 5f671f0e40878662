package models

import "time"

// LogEntry represents one tracked time interval. To == 0 means the entry is
// still open. The From* fields are derived from From at write time and group
// entries by calendar day for the summary view.
type LogEntry struct {
	ID          int64  `json:"id" db:"_id"`
	Type        int64  `json:"type" db:"_type"` // Logtype id
	From        int64  `json:"from" db:"_from"` // ms since epoch
	FromYear    int    `json:"fromYear" db:"_from_y"`
	FromMonth   int    `json:"fromMonth" db:"_from_m"` // 1-12
	FromWeek    int    `json:"fromWeek" db:"_from_w"`  // ISO week
	FromDay     int    `json:"fromDay" db:"_from_d"`   // day of year
	To          int64  `json:"to" db:"_to"`            // ms since epoch, 0 = open
	Comment     string `json:"comment,omitempty" db:"_comment"`
	StartByAuto bool   `json:"startByAuto" db:"_startbyauto"`

	// Joined from logtypes
	TypeName string   `json:"typeName,omitempty" db:"_type_name"`
	TypeKind TimeKind `json:"typeKind,omitempty" db:"_type_type"`
}

// Open reports whether the entry has not been closed yet.
func (e *LogEntry) Open() bool {
	return e.To == 0
}

// DayBuckets computes the calendar bucket fields for a timestamp in the
// server's local timezone.
func DayBuckets(ms int64) (year, month, week, day int) {
	t := time.UnixMilli(ms).Local()
	year = t.Year()
	month = int(t.Month())
	_, week = t.ISOWeek()
	day = t.YearDay()
	return
}

// LogFilter narrows log queries.
type LogFilter struct {
	Year      int   // 0 = any
	DayOfYear int   // 0 = any
	TypeID    int64 // 0 = any logtype
	Limit     int   // 0 = no limit
}
