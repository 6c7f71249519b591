package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/logbook/internal/services/tracker"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// errorPresentation maps a tracker error kind to an HTTP status and a
// human-readable message. Rendering lives here, at the presentation
// boundary; the core never string-matches on error content.
var errorPresentation = map[tracker.ErrorKind]struct {
	status  int
	message string
}{
	tracker.ErrNotAuthenticated:       {http.StatusUnauthorized, "Not connected to the tracker"},
	tracker.ErrInvalidCredentials:     {http.StatusUnauthorized, "The tracker rejected the credentials"},
	tracker.ErrInsufficientPermission: {http.StatusForbidden, "The tracker denied access"},
	tracker.ErrNotFound:               {http.StatusNotFound, "Issue not found or not accessible"},
	tracker.ErrInvalidDuration:        {http.StatusBadRequest, "Invalid time duration: use a positive number followed by m, h, or d"},
	tracker.ErrTimedOut:               {http.StatusGatewayTimeout, "The tracker did not respond in time"},
	tracker.ErrNetworkUnavailable:     {http.StatusBadGateway, "Could not reach the tracker"},
	tracker.ErrUntrustedCertificate:   {http.StatusBadGateway, "The tracker presented an untrusted certificate"},
	tracker.ErrRemoteServerError:      {http.StatusBadGateway, "The tracker reported an internal error"},
	tracker.ErrProtocolMismatch:       {http.StatusBadGateway, "Unexpected response from the tracker"},
}

// WriteTrackerError renders a classified tracker error as a JSON error
// response with the mapped HTTP status.
func WriteTrackerError(w http.ResponseWriter, err error) error {
	kind := tracker.KindOf(err)
	entry, ok := errorPresentation[kind]
	if !ok {
		entry.status = http.StatusBadGateway
		entry.message = "Unexpected response from the tracker"
	}

	return WriteJSON(w, entry.status, map[string]string{
		"status": "error",
		"kind":   string(kind),
		"error":  entry.message,
	})
}
