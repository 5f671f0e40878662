package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/service"
	"github.com/ub0r/travellog-backend/pkg/response"
)

// CheckerHandler handles HTTP requests for the location checker
type CheckerHandler struct {
	checkerService *service.CheckerService
	runner         *service.Runner
}

// NewCheckerHandler creates a new checker handler
func NewCheckerHandler(checkerService *service.CheckerService, runner *service.Runner) *CheckerHandler {
	return &CheckerHandler{checkerService: checkerService, runner: runner}
}

// ReportFix handles POST /api/v1/location — a device reporting its
// position. The next check cycle runs against it immediately.
func (h *CheckerHandler) ReportFix(c *gin.Context) {
	var fix models.Fix
	if err := c.ShouldBindJSON(&fix); err != nil {
		response.BadRequest(c, "Invalid location payload")
		return
	}

	if err := h.checkerService.ReportFix(fix); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.runner.Trigger()
	response.Success(c, fix)
}

// LastFix handles GET /api/v1/location
func (h *CheckerHandler) LastFix(c *gin.Context) {
	fix, err := h.checkerService.LastFix()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if fix == nil {
		response.NotFound(c, "No location reported yet")
		return
	}
	response.Success(c, fix)
}

// Trigger handles POST /api/v1/check — run a check cycle now
func (h *CheckerHandler) Trigger(c *gin.Context) {
	h.runner.Trigger()
	response.Success(c, gin.H{"triggered": true})
}

// Status handles GET /api/v1/check/status
func (h *CheckerHandler) Status(c *gin.Context) {
	fix, err := h.checkerService.LastFix()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	lat, lon, err := h.checkerService.LastChecked()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	level, lastNotify, err := h.checkerService.WarnState()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"lastFix":          fix,
		"lastCheckedLat":   lat,
		"lastCheckedLon":   lon,
		"level":            level.String(),
		"lastNotifyMillis": lastNotify,
	})
}
