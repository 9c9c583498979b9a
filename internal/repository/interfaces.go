package repository

import "camsettings/internal/model"

// HistoryRepository stores the audit trail of load/save exchanges with the camera.
type HistoryRepository interface {
	// Create operations
	Insert(entry *model.HistoryEntry) error

	// Read operations
	GetRecent(action string, limit int) ([]model.HistoryEntry, error)
	GetByID(id string) (*model.HistoryEntry, error)
	Count() (int, error)

	// Delete operations
	DeleteAll() error
}
