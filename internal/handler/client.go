package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"camsettings/internal/logger"
	"camsettings/internal/service"

	"github.com/gorilla/websocket"
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler streams form snapshots to a viewer. The current form is
// sent right after the upgrade, later ones whenever the form changes.
func ViewWebsocketHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}

		initial, err := json.Marshal(manager.Form())
		if err == nil {
			connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err = connection.WriteMessage(websocket.TextMessage, initial)
			connection.SetWriteDeadline(time.Time{})
		}
		if err != nil {
			logger.Error("Failed to send initial form: %v", err)
			connection.Close()
			return
		}

		hub := manager.GetWebsocketService()
		hub.Register(connection)
		defer hub.Unregister(connection)

		logger.Info("Viewer connected")

		connection.SetReadLimit(512)
		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info("Viewer disconnected normally")
				} else {
					logger.Error("Viewer disconnected with error: %v", err)
				}
				break
			}
		}
	}
}
