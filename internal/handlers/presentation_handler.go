package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
)

// PresentationHandler exposes the show/hide and test-notification
// commands.
type PresentationHandler struct {
	bridge       interfaces.PresentationService
	eventService interfaces.EventService
	logger       arbor.ILogger
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(bridge interfaces.PresentationService, eventService interfaces.EventService, logger arbor.ILogger) *PresentationHandler {
	return &PresentationHandler{
		bridge:       bridge,
		eventService: eventService,
		logger:       logger,
	}
}

// HideHandler handles POST /api/window/hide: minimize-to-background.
// A missing surface is a warning, not an error; the process keeps
// running either way.
func (h *PresentationHandler) HideHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := h.bridge.MinimizeToBackground(); err != nil {
		if errors.Is(err, interfaces.ErrPresentationUnavailable) {
			WriteJSON(w, http.StatusOK, map[string]string{
				"status":  "warning",
				"message": "No foreground surface attached",
			})
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(w, "Hidden to background")
}

// ShowHandler handles POST /api/window/show: restore-to-foreground.
func (h *PresentationHandler) ShowHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := h.bridge.RestoreToForeground(); err != nil {
		if errors.Is(err, interfaces.ErrPresentationUnavailable) {
			WriteJSON(w, http.StatusOK, map[string]string{
				"status":  "warning",
				"message": "No foreground surface attached",
			})
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(w, "Restored to foreground")
}

// TestNotificationHandler handles POST /api/notifications/test. The
// event travels the same dispatch path as the daily reminder so the
// whole notification chain can be verified manually.
func (h *PresentationHandler) TestNotificationHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	err := h.eventService.Publish(r.Context(), interfaces.Event{
		Type: interfaces.EventTestNotification,
		Payload: map[string]string{
			"message": "Test notification - the notification path works",
		},
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to dispatch test notification")
		return
	}

	WriteSuccess(w, "Test notification dispatched")
}
