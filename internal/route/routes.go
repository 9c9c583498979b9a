package route

import (
	"net/http"

	"github.com/gorilla/mux"

	"camsettings/internal/config"
	"camsettings/internal/handler"
	"camsettings/internal/logger"
	"camsettings/internal/middleware"
	"camsettings/internal/service"
	"camsettings/web"
)

// SetupRoutes registers the settings API, viewer websocket, log and auth
// endpoints plus the embedded pages, and wraps the router with the
// authentication middleware.
func SetupRoutes(manager *service.Manager, cfg *config.Config, sessions *middleware.Sessions, logger *logger.Logger) http.Handler {
	router := mux.NewRouter()

	// Settings API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/settings", handler.GetSettingsHandler(manager)).Methods(http.MethodGet)
	api.HandleFunc("/settings/load", handler.LoadSettingsHandler(manager)).Methods(http.MethodPost)
	api.HandleFunc("/settings/save", handler.SaveSettingsHandler(manager, logger)).Methods(http.MethodPost)
	api.HandleFunc("/settings/controls/{key}", handler.SetCheckboxHandler(manager)).Methods(http.MethodPut)
	api.HandleFunc("/settings/selects/{key}", handler.SetSelectHandler(manager)).Methods(http.MethodPut)
	api.HandleFunc("/settings/history", handler.GetHistoryHandler(manager, cfg, logger)).Methods(http.MethodGet)
	api.HandleFunc("/settings/history", handler.ClearHistoryHandler(manager, logger)).Methods(http.MethodDelete)
	api.HandleFunc("/settings/history/{id}", handler.GetHistoryEntryHandler(manager, logger)).Methods(http.MethodGet)
	api.HandleFunc("/view", handler.ViewWebsocketHandler(manager, logger))

	// Log endpoints
	router.HandleFunc("/logs/{level}", handler.ShowLogsHandler(logger)).Methods(http.MethodGet)
	router.HandleFunc("/logs/{level}/clear", handler.ClearLogsHandler(logger)).Methods(http.MethodPost)

	// Auth endpoints
	router.HandleFunc("/auth/login", handler.LoginHandler(cfg, sessions, logger)).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", handler.LogoutHandler(sessions)).Methods(http.MethodGet, http.MethodPost)

	// Embedded pages and assets, must stay last as it's a catch-all
	router.PathPrefix("/").Handler(web.StaticHandler())

	return middleware.AuthMiddleware(sessions, router)
}
