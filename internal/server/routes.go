package server

import (
	"fmt"
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route - foreground surface attachment
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Session
	mux.HandleFunc("/api/session/connect", s.app.SessionHandler.ConnectHandler)       // POST
	mux.HandleFunc("/api/session/disconnect", s.app.SessionHandler.DisconnectHandler) // POST
	mux.HandleFunc("/api/session", s.app.SessionHandler.StatusHandler)                // GET

	// API routes - Issues and worklogs
	mux.HandleFunc("/api/issues", s.app.IssueHandler.ListHandler)      // GET
	mux.HandleFunc("/api/worklogs", s.app.WorklogHandler.CreateHandler) // POST

	// API routes - Presentation
	mux.HandleFunc("/api/window/hide", s.app.PresentationHandler.HideHandler)                  // POST
	mux.HandleFunc("/api/window/show", s.app.PresentationHandler.ShowHandler)                  // POST
	mux.HandleFunc("/api/notifications/test", s.app.PresentationHandler.TestNotificationHandler) // POST

	// API routes - Reminder scheduler status
	mux.HandleFunc("/api/reminder", s.app.ReminderHandler.StatusHandler) // GET

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	return mux
}
