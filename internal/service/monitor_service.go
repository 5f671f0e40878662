package service

import (
	"log"

	"github.com/ub0r/travellog-backend/internal/config"
	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/notify"
	"github.com/ub0r/travellog-backend/internal/repository"
)

const (
	hourMillis = 3600 * 1000

	// notifyBackdate is subtracted from the persisted last-notify
	// timestamp so rounding cannot suppress the next re-notification.
	notifyBackdate = 100
)

// MonitorService compares today's accumulated duration against the
// configured warn and alert thresholds and decides whether to notify.
type MonitorService struct {
	logRepo   *repository.LogRepository
	stateRepo *repository.StateRepository
	notifier  notify.Notifier
	cfg       *config.Config
}

// NewMonitorService creates a new monitor service
func NewMonitorService(
	logRepo *repository.LogRepository,
	stateRepo *repository.StateRepository,
	notifier notify.Notifier,
	cfg *config.Config,
) *MonitorService {
	return &MonitorService{
		logRepo:   logRepo,
		stateRepo: stateRepo,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// countedKinds returns the kinds summed against the daily limits
func (s *MonitorService) countedKinds() []models.TimeKind {
	if s.cfg.CountTravel {
		return []models.TimeKind{models.KindWork, models.KindTravel}
	}
	return []models.TimeKind{models.KindWork}
}

// Check evaluates the thresholds for the day containing now. It returns
// the delay in ms until the debounce window reopens (so the caller can
// schedule the next check precisely), or <= 0 when no early re-check is
// needed.
func (s *MonitorService) Check(now int64) (int64, error) {
	year, _, _, day := models.DayBuckets(now)
	kinds := s.countedKinds()

	hasOpen, err := s.logRepo.HasOpenToday(year, day, kinds)
	if err != nil {
		return 0, err
	}
	if !hasOpen {
		// Nothing running: clear the notification and the debounce state.
		return -1, s.clear()
	}

	warn := int64(s.cfg.WarnHours * hourMillis)
	alert := int64(s.cfg.AlertHours * hourMillis)
	if warn <= 0 && alert <= 0 {
		return -1, s.clear()
	}

	total, err := s.logRepo.SumDay(year, day, kinds, now)
	if err != nil {
		return 0, err
	}

	level := models.LevelNothing
	var period int64
	var sound string
	switch {
	case alert > 0 && total > alert:
		level = models.LevelAlert
		period = s.cfg.AlertDelaySeconds * 1000
		sound = s.cfg.AlertSound
	case warn > 0 && total > warn:
		level = models.LevelWarn
		period = s.cfg.WarnDelaySeconds * 1000
		sound = s.cfg.WarnSound
	}

	if level == models.LevelNothing {
		return -1, s.clear()
	}

	lastLevel, lastNotify, err := s.stateRepo.WarnState()
	if err != nil {
		return 0, err
	}

	// Notify on every level transition, and again each period while the
	// level is sustained.
	if level != lastLevel || (period > 0 && lastNotify < now-period) {
		log.Printf("threshold %s reached: %d ms tracked today", level, total)
		if err := s.notifier.Notify(notify.ForLevel(level, sound, now)); err != nil {
			return 0, err
		}
		if err := s.stateRepo.SetWarnState(level, now-notifyBackdate); err != nil {
			return 0, err
		}
		return period, nil
	}

	// Suppressed: report how long until the window reopens.
	return lastNotify - now + period, nil
}

func (s *MonitorService) clear() error {
	if err := s.notifier.Cancel(); err != nil {
		return err
	}
	return s.stateRepo.ClearWarnState()
}
