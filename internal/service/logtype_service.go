package service

import (
	"fmt"

	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/repository"
)

// LogtypeService handles business logic for logtypes
type LogtypeService struct {
	logtypeRepo *repository.LogtypeRepository
}

// NewLogtypeService creates a new logtype service
func NewLogtypeService(logtypeRepo *repository.LogtypeRepository) *LogtypeService {
	return &LogtypeService{logtypeRepo: logtypeRepo}
}

// List retrieves all logtypes
func (s *LogtypeService) List() ([]models.Logtype, error) {
	return s.logtypeRepo.List()
}

// Get retrieves a single logtype; nil when it does not exist
func (s *LogtypeService) Get(id int64) (*models.Logtype, error) {
	return s.logtypeRepo.GetByID(id)
}

// Create validates and stores a new logtype
func (s *LogtypeService) Create(t *models.Logtype) (int64, error) {
	if t.Name == "" {
		return 0, fmt.Errorf("name must not be empty")
	}
	if !t.TimeKind.Valid() {
		return 0, fmt.Errorf("invalid time kind %d", t.TimeKind)
	}
	return s.logtypeRepo.Create(t)
}

// Update validates and stores a changed logtype; returns the number of
// affected rows
func (s *LogtypeService) Update(t *models.Logtype) (int64, error) {
	if t.Name == "" {
		return 0, fmt.Errorf("name must not be empty")
	}
	if !t.TimeKind.Valid() {
		return 0, fmt.Errorf("invalid time kind %d", t.TimeKind)
	}
	return s.logtypeRepo.Update(t)
}

// Delete removes a logtype. The last logtype of a kind cannot be removed:
// the matcher must always be able to resolve each kind to a logtype.
func (s *LogtypeService) Delete(id int64) (int64, error) {
	t, err := s.logtypeRepo.GetByID(id)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, nil
	}

	types, err := s.logtypeRepo.List()
	if err != nil {
		return 0, err
	}
	sameKind := 0
	for _, other := range types {
		if other.TimeKind == t.TimeKind {
			sameKind++
		}
	}
	if sameKind <= 1 {
		return 0, fmt.Errorf("cannot delete the last %s logtype", t.TimeKind)
	}

	return s.logtypeRepo.Delete(id)
}
