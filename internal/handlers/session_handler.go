package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
	"github.com/ternarybob/logbook/internal/models"
	"github.com/ternarybob/logbook/internal/services/session"
)

// SessionHandler exposes the connect/disconnect/status commands.
type SessionHandler struct {
	sessionService  *session.Service
	settingsStorage interfaces.SettingsStorage
	logger          arbor.ILogger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *session.Service, settingsStorage interfaces.SettingsStorage, logger arbor.ILogger) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		settingsStorage: settingsStorage,
		logger:          logger,
	}
}

type connectRequest struct {
	BaseURL     string `json:"base_url"`
	Identity    string `json:"identity"`
	AccessToken string `json:"access_token"`
}

// ConnectHandler handles POST /api/session/connect. On success the
// last-used connection details (never the token) are persisted for the
// next startup.
func (h *SessionHandler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BaseURL == "" || req.AccessToken == "" {
		WriteError(w, http.StatusBadRequest, "base_url and access_token are required")
		return
	}

	creds := models.NewCredentials(req.BaseURL, req.Identity, req.AccessToken)

	if err := h.sessionService.Connect(r.Context(), creds); err != nil {
		h.logger.Warn().
			Err(err).
			Str("base_url", creds.BaseURL).
			Msg("Connect failed")
		WriteTrackerError(w, err)
		return
	}

	h.persistSettings(r, creds)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"connected": true,
		"base_url":  creds.BaseURL,
	})
}

func (h *SessionHandler) persistSettings(r *http.Request, creds models.Credentials) {
	if h.settingsStorage == nil {
		return
	}

	settings, err := h.settingsStorage.LoadSaved(r.Context())
	if err != nil || settings == nil {
		settings = &models.Settings{}
	}
	settings.BaseURL = creds.BaseURL
	settings.Identity = creds.Identity

	if err := h.settingsStorage.Save(r.Context(), settings); err != nil {
		// Persistence is a convenience; a failed save never fails the connect.
		h.logger.Warn().Err(err).Msg("Failed to persist connection settings")
	}
}

// DisconnectHandler handles POST /api/session/disconnect. Always
// succeeds; disconnecting without a session is a no-op.
func (h *SessionHandler) DisconnectHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	h.sessionService.Disconnect()
	WriteSuccess(w, "Disconnected")
}

// StatusHandler handles GET /api/session. The secret is never reported.
func (h *SessionHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sess := h.sessionService.Current()
	if sess == nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"connected": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"connected": true,
		"base_url":  sess.Credentials.BaseURL,
		"identity":  sess.Credentials.Identity,
	})
}
