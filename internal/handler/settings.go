package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"camsettings/internal/config"
	"camsettings/internal/dto"
	"camsettings/internal/logger"
	"camsettings/internal/panel"
	"camsettings/internal/service"
)

// GetSettingsHandler returns the current form without contacting the camera.
func GetSettingsHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.FormResponse{Form: manager.Form()})
	}
}

// LoadSettingsHandler reloads the form from the camera.
func LoadSettingsHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := manager.Load(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadGateway, dto.FormResponse{Form: form, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, dto.FormResponse{Form: form})
	}
}

// SaveSettingsHandler writes the form to the camera.
func SaveSettingsHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, result, err := manager.Save(r.Context())
		resp := dto.SaveResponse{Form: form, Configs: result.Configs, Query: result.Query}
		if err != nil {
			resp.Error = err.Error()
			writeJSON(w, http.StatusBadGateway, resp)
			return
		}
		logger.Info("Settings saved from %s", r.RemoteAddr)
		writeJSON(w, http.StatusOK, resp)
	}
}

// SetCheckboxHandler applies a checkbox change event to the control named by {key}.
func SetCheckboxHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dto.CheckboxChange
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Checked == nil {
			writeError(w, http.StatusBadRequest, `body must be {"checked": bool}`)
			return
		}

		form, err := manager.SetChecked(mux.Vars(r)["key"], *body.Checked)
		if err != nil {
			writeControlError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.FormResponse{Form: form})
	}
}

// SetSelectHandler changes the value of the select named by {key}.
func SetSelectHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dto.SelectChange
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Value == nil {
			writeError(w, http.StatusBadRequest, `body must be {"value": string}`)
			return
		}

		form, err := manager.SetSelect(mux.Vars(r)["key"], *body.Value)
		if err != nil {
			writeControlError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.FormResponse{Form: form})
	}
}

// GetHistoryHandler lists recent exchanges, optionally filtered by ?action=load|save.
func GetHistoryHandler(manager *service.Manager, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit := atoiDefault(q.Get("limit"), cfg.HistoryLimit)

		entries, err := manager.History(q.Get("action"), limit)
		if err != nil {
			logger.Error("Error querying exchange history: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		total, err := manager.HistoryTotal()
		if err != nil {
			logger.Error("Error counting exchange history: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		writeJSON(w, http.StatusOK, dto.HistoryData{Entries: entries, Limit: limit, Total: total})
	}
}

// GetHistoryEntryHandler returns the exchange named by {id}.
func GetHistoryEntryHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		entry, err := manager.HistoryEntry(id)
		if err != nil {
			logger.Error("Error querying exchange %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if entry == nil {
			writeError(w, http.StatusNotFound, "exchange not found")
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// ClearHistoryHandler deletes the exchange history.
func ClearHistoryHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := manager.ClearHistory(); err != nil {
			logger.Error("Error clearing exchange history: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		logger.Info("Exchange history cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeControlError(w http.ResponseWriter, err error) {
	if errors.Is(err, panel.ErrUnknownControl) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
