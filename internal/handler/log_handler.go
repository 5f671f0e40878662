package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ub0r/travellog-backend/internal/models"
	"github.com/ub0r/travellog-backend/internal/service"
	"github.com/ub0r/travellog-backend/pkg/response"
)

// LogHandler handles HTTP requests for log entries
type LogHandler struct {
	logService  *service.LogService
	countTravel bool
}

// NewLogHandler creates a new log handler
func NewLogHandler(logService *service.LogService, countTravel bool) *LogHandler {
	return &LogHandler{logService: logService, countTravel: countTravel}
}

// List handles GET /api/v1/logs
func (h *LogHandler) List(c *gin.Context) {
	var filter models.LogFilter
	filter.Year, _ = strconv.Atoi(c.DefaultQuery("year", "0"))
	filter.DayOfYear, _ = strconv.Atoi(c.DefaultQuery("day", "0"))
	filter.TypeID, _ = strconv.ParseInt(c.DefaultQuery("type", "0"), 10, 64)
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	logs, err := h.logService.List(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, logs)
}

// Open handles GET /api/v1/logs/open
func (h *LogHandler) Open(c *gin.Context) {
	logs, err := h.logService.OpenLogs()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, logs)
}

// Get handles GET /api/v1/logs/:id
func (h *LogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid log id")
		return
	}

	entry, err := h.logService.Get(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if entry == nil {
		response.NotFound(c, "Log not found")
		return
	}
	response.Success(c, entry)
}

// Update handles PUT /api/v1/logs/:id
func (h *LogHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid log id")
		return
	}

	var entry models.LogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		response.BadRequest(c, "Invalid log payload")
		return
	}
	entry.ID = id

	n, err := h.logService.Update(&entry)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if n == 0 {
		response.NotFound(c, "Log not found")
		return
	}
	response.Success(c, entry)
}

// ChangeState handles POST /api/v1/logs/state — the manual "start tracking
// as X" button
func (h *LogHandler) ChangeState(c *gin.Context) {
	var req struct {
		LogtypeID int64 `json:"logtypeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.LogtypeID <= 0 {
		response.BadRequest(c, "Invalid logtype id")
		return
	}

	if err := h.logService.ChangeState(req.LogtypeID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"logtypeId": req.LogtypeID})
}

// Stop handles POST /api/v1/logs/stop — the manual stop button
func (h *LogHandler) Stop(c *gin.Context) {
	if err := h.logService.Stop(); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"stopped": true})
}

// Delete handles DELETE /api/v1/logs/:id
func (h *LogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid log id")
		return
	}

	n, err := h.logService.Delete(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if n == 0 {
		response.NotFound(c, "Log not found")
		return
	}
	response.Success(c, gin.H{"deleted": n})
}

// Clear handles DELETE /api/v1/logs
func (h *LogHandler) Clear(c *gin.Context) {
	n, err := h.logService.Clear()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": n})
}

// daySummaryView adds the counted total to a day summary row
type daySummaryView struct {
	models.DaySummary
	Total int64 `json:"total"`
}

// Summary handles GET /api/v1/logs/summary
func (h *LogHandler) Summary(c *gin.Context) {
	sums, err := h.logService.DaySummaries(time.Now().UnixMilli())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	views := make([]daySummaryView, len(sums))
	for i, s := range sums {
		views[i] = daySummaryView{DaySummary: s, Total: s.Total(h.countTravel)}
	}
	response.Success(c, views)
}
