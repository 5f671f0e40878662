package service

import (
	"fmt"

	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/repository"
)

// CellService handles business logic for geofence cells
type CellService struct {
	cellRepo *repository.CellRepository
}

// NewCellService creates a new cell service
func NewCellService(cellRepo *repository.CellRepository) *CellService {
	return &CellService{cellRepo: cellRepo}
}

// List retrieves all cells
func (s *CellService) List() ([]models.Cell, error) {
	return s.cellRepo.List()
}

// Get retrieves a single cell; nil when it does not exist
func (s *CellService) Get(id int64) (*models.Cell, error) {
	return s.cellRepo.GetByID(id)
}

// Create validates and stores a new cell
func (s *CellService) Create(c *models.Cell) (int64, error) {
	if err := validateCell(c); err != nil {
		return 0, err
	}
	return s.cellRepo.Create(c)
}

// Update validates and stores a changed cell definition; returns the
// number of affected rows
func (s *CellService) Update(c *models.Cell) (int64, error) {
	if err := validateCell(c); err != nil {
		return 0, err
	}
	return s.cellRepo.Update(c)
}

// Delete removes a cell; returns the number of affected rows
func (s *CellService) Delete(id int64) (int64, error) {
	return s.cellRepo.Delete(id)
}

func validateCell(c *models.Cell) error {
	if c.Radius < 0 {
		return fmt.Errorf("radius must not be negative")
	}
	if c.Type != models.KindNone && !c.Type.Valid() {
		return fmt.Errorf("invalid cell type %d", c.Type)
	}
	if c.Latitude < -90*models.CoordScale || c.Latitude > 90*models.CoordScale {
		return fmt.Errorf("latitude out of range")
	}
	if c.Longitude < -180*models.CoordScale || c.Longitude > 180*models.CoordScale {
		return fmt.Errorf("longitude out of range")
	}
	return nil
}
