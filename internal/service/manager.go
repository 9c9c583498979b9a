package service

import (
	"context"
	"encoding/json"

	"camsettings/internal/logger"
	"camsettings/internal/model"
	"camsettings/internal/panel"
	"camsettings/internal/repository"
	"camsettings/internal/service/websocket"
)

// Manager drives the settings panel of one camera, pushes every form change
// to connected viewers and keeps an audit trail of device exchanges.
type Manager struct {
	panel            *panel.Panel
	websocketService *websocket.HubService
	historyRepo      repository.HistoryRepository
	logger           *logger.Logger
}

// NewManager wires the panel to its viewers and history. hub and historyRepo may be nil.
func NewManager(p *panel.Panel, hub *websocket.HubService, historyRepo repository.HistoryRepository, logger *logger.Logger) *Manager {
	m := &Manager{
		panel:            p,
		websocketService: hub,
		historyRepo:      historyRepo,
		logger:           logger,
	}
	// Viewers see "Loading..." and "Saving..." while the camera is busy.
	p.OnChange(func() { m.publish() })
	return m
}

// Load refreshes the form from the camera.
func (m *Manager) Load(ctx context.Context) (*panel.Form, error) {
	configs, err := m.panel.Load(ctx)
	m.record(model.ActionLoad, configs, "", err)
	return m.publish(), err
}

// Save writes the form to the camera.
func (m *Manager) Save(ctx context.Context) (*panel.Form, panel.SaveResult, error) {
	result, err := m.panel.Save(ctx)
	m.record(model.ActionSave, result.Configs, result.Query, err)
	return m.publish(), result, err
}

// SetChecked applies a checkbox change event.
func (m *Manager) SetChecked(key string, checked bool) (*panel.Form, error) {
	if err := m.panel.SetChecked(key, checked); err != nil {
		return nil, err
	}
	return m.publish(), nil
}

// SetSelect applies a select change.
func (m *Manager) SetSelect(key, value string) (*panel.Form, error) {
	if err := m.panel.SetSelect(key, value); err != nil {
		return nil, err
	}
	return m.publish(), nil
}

// Form returns the current form without touching the camera.
func (m *Manager) Form() *panel.Form {
	return m.panel.Snapshot()
}

// History returns recent exchanges, newest first.
func (m *Manager) History(action string, limit int) ([]model.HistoryEntry, error) {
	if m.historyRepo == nil {
		return []model.HistoryEntry{}, nil
	}
	return m.historyRepo.GetRecent(action, limit)
}

// HistoryEntry returns one exchange, or nil when it does not exist.
func (m *Manager) HistoryEntry(id string) (*model.HistoryEntry, error) {
	if m.historyRepo == nil {
		return nil, nil
	}
	return m.historyRepo.GetByID(id)
}

// HistoryTotal returns how many exchanges are stored.
func (m *Manager) HistoryTotal() (int, error) {
	if m.historyRepo == nil {
		return 0, nil
	}
	return m.historyRepo.Count()
}

// ClearHistory deletes every recorded exchange.
func (m *Manager) ClearHistory() error {
	if m.historyRepo == nil {
		return nil
	}
	return m.historyRepo.DeleteAll()
}

func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.websocketService
}

// publish snapshots the form and sends it to viewers.
func (m *Manager) publish() *panel.Form {
	form := m.panel.Snapshot()
	if m.websocketService == nil {
		return form
	}

	msg, err := json.Marshal(form)
	if err != nil {
		m.logger.Error("Failed to encode form for viewers: %v", err)
		return form
	}
	m.websocketService.Broadcast(msg)
	return form
}

// record stores an exchange. A failing history never fails the exchange itself.
func (m *Manager) record(action string, configs model.ConfigMap, query string, exchangeErr error) {
	if m.historyRepo == nil {
		return
	}

	entry := &model.HistoryEntry{
		Action:  action,
		Payload: configs,
		Query:   query,
		Success: exchangeErr == nil,
	}
	if exchangeErr != nil {
		entry.Error = exchangeErr.Error()
	}
	if err := m.historyRepo.Insert(entry); err != nil {
		m.logger.Warning("Failed to record %s exchange: %v", action, err)
	}
}
