package dto

import (
	"camsettings/internal/model"
	"camsettings/internal/panel"
)

// FormResponse carries the form after an operation, plus the error if it failed.
type FormResponse struct {
	Form  *panel.Form `json:"form"`
	Error string      `json:"error,omitempty"`
}

// SaveResponse adds what a save collected and sent to the camera.
type SaveResponse struct {
	Form    *panel.Form     `json:"form"`
	Configs model.ConfigMap `json:"configs"`
	Query   string          `json:"query"`
	Error   string          `json:"error,omitempty"`
}

// CheckboxChange is the body of a checkbox change event.
type CheckboxChange struct {
	Checked *bool `json:"checked"`
}

// SelectChange is the body of a select change.
type SelectChange struct {
	Value *string `json:"value"`
}

// HistoryData lists recorded exchanges.
type HistoryData struct {
	Entries []model.HistoryEntry `json:"entries"`
	Limit   int                  `json:"limit"`
	Total   int                  `json:"total"`
}
