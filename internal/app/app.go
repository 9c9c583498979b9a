package app

import (
	"context"
	"fmt"
	"net/http"

	"camsettings/internal/config"
	"camsettings/internal/logger"
	"camsettings/internal/middleware"
	"camsettings/internal/panel"
	"camsettings/internal/repository/sqlite"
	"camsettings/internal/route"
	"camsettings/internal/service"
	"camsettings/internal/service/device"
	"camsettings/internal/service/websocket"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	hubService *websocket.HubService
	manager    *service.Manager
	sessions   *middleware.Sessions
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	hub := websocket.NewHubService(log)
	p := panel.New(panel.DefaultForm(), device.NewClient(cfg, log), log)
	mng := service.NewManager(p, hub, sqlite.NewHistoryRepository(db), log)

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		hubService: hub,
		manager:    mng,
		sessions:   middleware.NewSessions(),
	}, nil
}

func (a *App) Run() error {
	defer a.close()

	go a.hubService.Run()

	// Same as the page's initial fetch; a failure leaves the form on "Loading...".
	go a.manager.Load(context.Background())

	router := route.SetupRoutes(a.manager, a.config, a.sessions, a.logger)

	a.logger.Info("Camera settings server")
	a.logger.Info("URL: http://localhost:%d", a.config.Port)
	a.logger.Info("Camera: %s", a.config.DeviceURL)
	a.logger.Info("History database: %s", a.config.DatabasePath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

func (a *App) close() {
	a.hubService.Stop()
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database: %v", err)
	}
	a.logger.Close()
}
