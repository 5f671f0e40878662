// Package notify delivers threshold notifications to the device/UI side.
package notify

import (
	"github.com/ub0r/travellog-backend/internal/models"
)

// LED blink parameters carried on every directive.
const (
	LEDColor    = 0xffff0000
	LEDOnMilli  = 500
	LEDOffMilli = 2000
)

// Directive describes one user-facing notification. Title and Text are
// message keys; rendering and localization happen on the consumer side.
type Directive struct {
	Level     models.Level `json:"level"`
	LevelName string       `json:"levelName"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Sound     string       `json:"sound,omitempty"`
	Sticky    bool         `json:"sticky"` // alert stays until cancelled
	LEDColor  uint32       `json:"ledColor"`
	LEDOn     int          `json:"ledOnMillis"`
	LEDOff    int          `json:"ledOffMillis"`
	Timestamp int64        `json:"timestamp"` // ms since epoch
}

// ForLevel builds the directive for a level with the given sound. Returns
// a zero directive for LevelNothing.
func ForLevel(level models.Level, sound string, now int64) Directive {
	d := Directive{
		Level:     level,
		LevelName: level.String(),
		Sound:     sound,
		LEDColor:  LEDColor,
		LEDOn:     LEDOnMilli,
		LEDOff:    LEDOffMilli,
		Timestamp: now,
	}
	switch level {
	case models.LevelAlert:
		d.Title = "alert_title"
		d.Text = "alert_text"
		d.Sticky = true
	case models.LevelWarn:
		d.Title = "warn_title"
		d.Text = "warn_text"
	}
	return d
}

// Notifier is the notification sink.
type Notifier interface {
	// Notify raises (or replaces) the current notification.
	Notify(d Directive) error

	// Cancel removes the current notification, if any.
	Cancel() error

	// Close releases the sink.
	Close() error
}
