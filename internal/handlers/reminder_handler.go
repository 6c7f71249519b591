package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
)

// ReminderHandler reports the reminder scheduler status.
type ReminderHandler struct {
	reminderService interfaces.ReminderService
	logger          arbor.ILogger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService interfaces.ReminderService, logger arbor.ILogger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// StatusHandler handles GET /api/reminder.
func (h *ReminderHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, h.reminderService.Status())
}
