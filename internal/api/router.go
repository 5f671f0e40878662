package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ub0r/travellog-backend/internal/config"
	"github.com/ub0r/travellog-backend/internal/handler"
	"github.com/ub0r/travellog-backend/internal/middleware"
)

// Handlers collects all route handlers
type Handlers struct {
	Cells    *handler.CellHandler
	Logtypes *handler.LogtypeHandler
	Logs     *handler.LogHandler
	Checker  *handler.CheckerHandler
	Auth     *handler.AuthHandler
}

// SetupRouter builds the HTTP router
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(300, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TravelLog backend is running",
		})
	})

	api := r.Group("/api/v1")

	api.POST("/auth/token", h.Auth.Token)

	if cfg.AuthEnabled {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}

	cells := api.Group("/cells")
	{
		cells.GET("", h.Cells.List)
		cells.GET("/:id", h.Cells.Get)
		cells.POST("", h.Cells.Create)
		cells.PUT("/:id", h.Cells.Update)
		cells.DELETE("/:id", h.Cells.Delete)
	}

	logtypes := api.Group("/logtypes")
	{
		logtypes.GET("", h.Logtypes.List)
		logtypes.GET("/:id", h.Logtypes.Get)
		logtypes.POST("", h.Logtypes.Create)
		logtypes.PUT("/:id", h.Logtypes.Update)
		logtypes.DELETE("/:id", h.Logtypes.Delete)
	}

	logs := api.Group("/logs")
	{
		logs.GET("", h.Logs.List)
		logs.GET("/open", h.Logs.Open)
		logs.GET("/summary", h.Logs.Summary)
		logs.GET("/:id", h.Logs.Get)
		logs.PUT("/:id", h.Logs.Update)
		logs.DELETE("/:id", h.Logs.Delete)
		logs.DELETE("", h.Logs.Clear)
		logs.POST("/state", h.Logs.ChangeState)
		logs.POST("/stop", h.Logs.Stop)
	}

	api.POST("/location", h.Checker.ReportFix)
	api.GET("/location", h.Checker.LastFix)
	api.POST("/check", h.Checker.Trigger)
	api.GET("/check/status", h.Checker.Status)

	return r
}
