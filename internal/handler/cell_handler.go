package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/service"
	"github.com/ub0r/travellog-backend/pkg/response"
)

// CellHandler handles HTTP requests for geofence cells
type CellHandler struct {
	cellService *service.CellService
}

// NewCellHandler creates a new cell handler
func NewCellHandler(cellService *service.CellService) *CellHandler {
	return &CellHandler{cellService: cellService}
}

// List handles GET /api/v1/cells
func (h *CellHandler) List(c *gin.Context) {
	cells, err := h.cellService.List()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, cells)
}

// Get handles GET /api/v1/cells/:id
func (h *CellHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid cell id")
		return
	}

	cell, err := h.cellService.Get(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if cell == nil {
		response.NotFound(c, "Cell not found")
		return
	}
	response.Success(c, cell)
}

// Create handles POST /api/v1/cells
func (h *CellHandler) Create(c *gin.Context) {
	var cell models.Cell
	if err := c.ShouldBindJSON(&cell); err != nil {
		response.BadRequest(c, "Invalid cell payload")
		return
	}

	id, err := h.cellService.Create(&cell)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cell.ID = id
	response.Success(c, cell)
}

// Update handles PUT /api/v1/cells/:id
func (h *CellHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid cell id")
		return
	}

	var cell models.Cell
	if err := c.ShouldBindJSON(&cell); err != nil {
		response.BadRequest(c, "Invalid cell payload")
		return
	}
	cell.ID = id

	n, err := h.cellService.Update(&cell)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if n == 0 {
		response.NotFound(c, "Cell not found")
		return
	}
	response.Success(c, cell)
}

// Delete handles DELETE /api/v1/cells/:id
func (h *CellHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid cell id")
		return
	}

	n, err := h.cellService.Delete(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if n == 0 {
		response.NotFound(c, "Cell not found")
		return
	}
	response.Success(c, gin.H{"deleted": n})
}
