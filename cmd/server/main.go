package main

import (
	"log"
	"sync"
	"time"

	"github.com/ub0r/travellog-backend/internal/api"
	"github.com/ub0r/travellog-backend/internal/config"
	"github.com/ub0r/travellog-backend/internal/database"
	"github.com/ub0r/travellog-backend/internal/handler"
	"github.com/ub0r/travellog-backend/internal/notify"
	"github.com/ub0r/travellog-backend/internal/repository"
	"github.com/ub0r/travellog-backend/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	cellRepo := repository.NewCellRepository(db)
	logtypeRepo := repository.NewLogtypeRepository(db)
	logRepo := repository.NewLogRepository(db)
	stateRepo := repository.NewStateRepository(db)

	var notifier notify.Notifier
	if cfg.MQTTBroker != "" {
		n, err := notify.NewMQTTNotifier(cfg.MQTTBroker, cfg.MQTTTopic)
		if err != nil {
			log.Fatal("Failed to connect notifier:", err)
		}
		notifier = n
	} else {
		notifier = notify.NewLogNotifier()
	}
	defer notifier.Close()

	// One lock serializes the geofence-driven and the manual path.
	var storeLock sync.Mutex

	monitor := service.NewMonitorService(logRepo, stateRepo, notifier, cfg)
	checker := service.NewCheckerService(cellRepo, logRepo, logtypeRepo, stateRepo, monitor, &storeLock)

	runner := service.NewRunner(checker, time.Duration(cfg.UpdateIntervalMinutes)*time.Minute)
	// Re-evaluate thresholds right after any log mutation.
	logRepo.Observe(runner.Trigger)
	runner.Start()
	defer runner.Stop()

	h := api.Handlers{
		Cells:    handler.NewCellHandler(service.NewCellService(cellRepo)),
		Logtypes: handler.NewLogtypeHandler(service.NewLogtypeService(logtypeRepo)),
		Logs:     handler.NewLogHandler(service.NewLogService(logRepo, logtypeRepo, &storeLock), cfg.CountTravel),
		Checker:  handler.NewCheckerHandler(checker, runner),
		Auth:     handler.NewAuthHandler(cfg.JWTSecret),
	}

	router := api.SetupRouter(cfg, h)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
