package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/services/session"
)

// IssueHandler exposes the assigned-issue listing command.
type IssueHandler struct {
	sessionService *session.Service
	logger         arbor.ILogger
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(sessionService *session.Service, logger arbor.ILogger) *IssueHandler {
	return &IssueHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// ListHandler handles GET /api/issues. Returns the open issues assigned
// to the connected identity; an empty list is a valid response.
func (h *IssueHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	issues, err := h.sessionService.ListAssignedIssues(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to list assigned issues")
		WriteTrackerError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"issues": issues,
		"count":  len(issues),
	})
}
