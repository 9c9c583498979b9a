package model

import "time"

// Exchange actions recorded in the history.
const (
	ActionLoad = "load"
	ActionSave = "save"
)

// HistoryEntry records one load or save exchange with the camera.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Payload   ConfigMap `json:"payload"`
	Query     string    `json:"query,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
