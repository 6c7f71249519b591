package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/models"
	"github.com/ternarybob/logbook/internal/services/session"
)

// WorklogHandler exposes the worklog submission command.
type WorklogHandler struct {
	sessionService *session.Service
	logger         arbor.ILogger
}

// NewWorklogHandler creates a new worklog handler
func NewWorklogHandler(sessionService *session.Service, logger arbor.ILogger) *WorklogHandler {
	return &WorklogHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// CreateHandler handles POST /api/worklogs. The started timestamp must
// carry an explicit UTC offset; the time_spent token is forwarded to the
// tracker verbatim.
func (h *WorklogHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var submission models.WorklogSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if submission.IssueKey == "" {
		WriteError(w, http.StatusBadRequest, "issue_key is required")
		return
	}
	if submission.StartedAt == "" {
		WriteError(w, http.StatusBadRequest, "started is required")
		return
	}

	created, err := h.sessionService.SubmitWorklog(r.Context(), submission)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("issue", submission.IssueKey).
			Msg("Worklog submission failed")
		WriteTrackerError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}
