package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/service"
	"github.com/ub0r/travellog-backend/pkg/response"
)

// LogtypeHandler handles HTTP requests for logtypes
type LogtypeHandler struct {
	logtypeService *service.LogtypeService
}

// NewLogtypeHandler creates a new logtype handler
func NewLogtypeHandler(logtypeService *service.LogtypeService) *LogtypeHandler {
	return &LogtypeHandler{logtypeService: logtypeService}
}

// List handles GET /api/v1/logtypes
func (h *LogtypeHandler) List(c *gin.Context) {
	types, err := h.logtypeService.List()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, types)
}

// Get handles GET /api/v1/logtypes/:id
func (h *LogtypeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid logtype id")
		return
	}

	t, err := h.logtypeService.Get(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if t == nil {
		response.NotFound(c, "Logtype not found")
		return
	}
	response.Success(c, t)
}

// Create handles POST /api/v1/logtypes
func (h *LogtypeHandler) Create(c *gin.Context) {
	var t models.Logtype
	if err := c.ShouldBindJSON(&t); err != nil {
		response.BadRequest(c, "Invalid logtype payload")
		return
	}

	id, err := h.logtypeService.Create(&t)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t.ID = id
	response.Success(c, t)
}

// Update handles PUT /api/v1/logtypes/:id
func (h *LogtypeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid logtype id")
		return
	}

	var t models.Logtype
	if err := c.ShouldBindJSON(&t); err != nil {
		response.BadRequest(c, "Invalid logtype payload")
		return
	}
	t.ID = id

	n, err := h.logtypeService.Update(&t)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if n == 0 {
		response.NotFound(c, "Logtype not found")
		return
	}
	response.Success(c, t)
}

// Delete handles DELETE /api/v1/logtypes/:id
func (h *LogtypeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid logtype id")
		return
	}

	n, err := h.logtypeService.Delete(id)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if n == 0 {
		response.NotFound(c, "Logtype not found")
		return
	}
	response.Success(c, gin.H{"deleted": n})
}
