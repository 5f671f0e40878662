package service

import (
	"fmt"
	"sync"

	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/repository"
)

// LogService handles the manual (UI-driven) side of the log table: listing,
// edits, deletion, and explicit open/stop. Manual state changes take the
// same lock as the check cycle so both paths stay single-writer.
type LogService struct {
	logRepo     *repository.LogRepository
	logtypeRepo *repository.LogtypeRepository
	lock        sync.Locker
}

// NewLogService creates a new log service
func NewLogService(logRepo *repository.LogRepository, logtypeRepo *repository.LogtypeRepository, lock sync.Locker) *LogService {
	return &LogService{
		logRepo:     logRepo,
		logtypeRepo: logtypeRepo,
		lock:        lock,
	}
}

// List retrieves log entries
func (s *LogService) List(filter models.LogFilter) ([]models.LogEntry, error) {
	return s.logRepo.List(filter)
}

// Get retrieves a single entry; nil when it does not exist
func (s *LogService) Get(id int64) (*models.LogEntry, error) {
	return s.logRepo.GetByID(id)
}

// OpenLogs retrieves the currently open entries
func (s *LogService) OpenLogs() ([]models.LogEntry, error) {
	return s.logRepo.OpenLogs()
}

// Update applies a manual edit. An end before the start is rejected; an
// unknown id affects zero rows.
func (s *LogService) Update(e *models.LogEntry) (int64, error) {
	if e.From <= 0 {
		return 0, fmt.Errorf("start timestamp must be set")
	}
	if e.To != 0 && e.To < e.From {
		return 0, fmt.Errorf("end must not be before start")
	}
	t, err := s.logtypeRepo.GetByID(e.Type)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, fmt.Errorf("unknown logtype %d", e.Type)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	return s.logRepo.Update(e)
}

// ChangeState handles a manual open: the open log is closed and a new one
// of the given logtype is started, regardless of what was running. Unlike
// the geofence path there is no same-kind skip.
func (s *LogService) ChangeState(logtypeID int64) error {
	t, err := s.logtypeRepo.GetByID(logtypeID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("unknown logtype %d", logtypeID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.logRepo.CloseOpen(0, false); err != nil {
		return err
	}
	_, err = s.logRepo.OpenNew(0, logtypeID, false)
	return err
}

// Stop handles a manual stop: the open log is closed, nothing is opened.
func (s *LogService) Stop() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, err := s.logRepo.CloseOpen(0, false)
	return err
}

// Delete removes an entry; returns the number of affected rows
func (s *LogService) Delete(id int64) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.logRepo.Delete(id)
}

// Clear removes all entries; returns the number of affected rows
func (s *LogService) Clear() (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.logRepo.Clear()
}

// DaySummaries aggregates entries per calendar day
func (s *LogService) DaySummaries(now int64) ([]models.DaySummary, error) {
	return s.logRepo.DaySummaries(now)
}
