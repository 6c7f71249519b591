package interfaces

import (
	"context"

	"github.com/ternarybob/logbook/internal/models"
)

// TrackerClient performs domain-level operations against the remote
// ticket tracker. Implementations classify every failure into the
// tracker error taxonomy; callers never inspect raw HTTP status codes.
type TrackerClient interface {
	// Authenticate issues a lightweight identity check against the
	// configured base URL. Returns true only on a recognizable identity
	// payload, false when the tracker rejects the credentials.
	Authenticate(ctx context.Context) (bool, error)

	// ListAssignedIssues returns open issues assigned to the
	// authenticated identity. An empty result is a valid success.
	ListAssignedIssues(ctx context.Context) ([]models.Issue, error)

	// SubmitWorklog posts a worklog entry to the issue's worklog
	// sub-resource.
	SubmitWorklog(ctx context.Context, submission models.WorklogSubmission) (*models.WorklogCreated, error)
}

// Session is the in-memory record of an authenticated tracker
// connection. At most one Session is live per process.
type Session struct {
	Credentials models.Credentials
	Client      TrackerClient
	Generation  uint64
}

// SessionService owns the process-wide connection state. Connect and
// Disconnect are the only mutations; all reads go through Current.
type SessionService interface {
	// Connect authenticates the credentials and, on success, installs
	// the resulting session. A failed connect leaves the state
	// untouched.
	Connect(ctx context.Context, creds models.Credentials) error

	// Disconnect idempotently clears the session. Always succeeds.
	Disconnect()

	// Current returns the live session, or nil when disconnected.
	Current() *Session
}
