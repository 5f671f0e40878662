package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/repository"
	"github.com/ub0r/travellog-backend/internal/spatial"
)

// CheckerService runs the check cycle: it matches the last reported fix
// against the stored cells and translates the result into log mutations.
type CheckerService struct {
	cellRepo    *repository.CellRepository
	logRepo     *repository.LogRepository
	logtypeRepo *repository.LogtypeRepository
	stateRepo   *repository.StateRepository
	monitor     *MonitorService
	lock        sync.Locker
}

// NewCheckerService creates a new checker service
func NewCheckerService(
	cellRepo *repository.CellRepository,
	logRepo *repository.LogRepository,
	logtypeRepo *repository.LogtypeRepository,
	stateRepo *repository.StateRepository,
	monitor *MonitorService,
	lock sync.Locker,
) *CheckerService {
	return &CheckerService{
		cellRepo:    cellRepo,
		logRepo:     logRepo,
		logtypeRepo: logtypeRepo,
		stateRepo:   stateRepo,
		monitor:     monitor,
		lock:        lock,
	}
}

// RunCycle executes one full check cycle: location match, state
// transitions, threshold evaluation. Returns the delay in ms after which
// the next cycle should run early, or <= 0 when the base interval is fine.
func (s *CheckerService) RunCycle(now int64) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.checkLocation(now); err != nil {
		return 0, err
	}
	return s.monitor.Check(now)
}

// ReportFix stores a device position for the next cycle
func (s *CheckerService) ReportFix(fix models.Fix) error {
	if fix.Latitude < -90 || fix.Latitude > 90 || fix.Longitude < -180 || fix.Longitude > 180 {
		return fmt.Errorf("fix out of range")
	}
	if fix.Time <= 0 {
		return fmt.Errorf("fix time must be set")
	}
	return s.stateRepo.SetFix(fix)
}

// LastFix returns the last reported device position, or nil
func (s *CheckerService) LastFix() (*models.Fix, error) {
	return s.stateRepo.Fix()
}

// LastChecked returns the position of the most recently compared cell
func (s *CheckerService) LastChecked() (lat, lon int32, err error) {
	return s.stateRepo.LastChecked()
}

// WarnState returns the persisted notification level and last-notify time
func (s *CheckerService) WarnState() (models.Level, int64, error) {
	return s.stateRepo.WarnState()
}

// checkLocation matches the fix against all cells in storage order and
// applies the resulting state transitions. No known fix means no decision.
func (s *CheckerService) checkLocation(now int64) error {
	fix, err := s.stateRepo.Fix()
	if err != nil {
		return err
	}
	if fix == nil {
		log.Printf("no current location known")
		return nil
	}

	cells, err := s.cellRepo.List()
	if err != nil {
		return err
	}

	for _, cell := range cells {
		// Every compared cell position is persisted, matched or not; the
		// UI shows which position the fix was last compared against.
		if err := s.stateRepo.SetLastChecked(cell.Latitude, cell.Longitude); err != nil {
			return err
		}

		dist := spatial.HaversineDistance(
			fix.Latitude, fix.Longitude, cell.LatDegrees(), cell.LonDegrees())
		if dist > float64(cell.Radius) {
			continue
		}

		// First matching cell wins regardless of distance.
		log.Printf("fix in cell %d, type %s", cell.ID, cell.Type)
		if err := s.applyMatch(&cell, now); err != nil {
			return err
		}
		return s.cellRepo.TouchSeen(cell.ID, now)
	}

	// Outside all cells: close what automation opened, leave manual
	// sessions running.
	log.Printf("no matching cell, closing auto-opened logs")
	_, err = s.logRepo.CloseOpen(now, true)
	return err
}

// applyMatch turns a matched cell into log mutations
func (s *CheckerService) applyMatch(cell *models.Cell, now int64) error {
	if cell.Type == models.KindNone {
		// Neutral zone: close whatever is open, open nothing.
		_, err := s.logRepo.CloseOpen(now, false)
		return err
	}

	open, err := s.logRepo.HasOpenOfKind(cell.Type)
	if err != nil {
		return err
	}
	if open {
		// Re-entering the same geofence must not churn the open log.
		log.Printf("log of kind %s already open, skipping", cell.Type)
		return nil
	}

	logtype, err := s.logtypeRepo.FirstOfKind(cell.Type)
	if err != nil {
		return err
	}
	if logtype == nil {
		log.Printf("no logtype of kind %s, leaving state unchanged", cell.Type)
		return nil
	}

	if _, err := s.logRepo.CloseOpen(now, false); err != nil {
		return err
	}
	_, err = s.logRepo.OpenNew(now, logtype.ID, true)
	return err
}
