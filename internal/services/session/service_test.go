package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/common"
	"github.com/ternarybob/logbook/internal/interfaces"
	"github.com/ternarybob/logbook/internal/models"
	"github.com/ternarybob/logbook/internal/services/events"
	"github.com/ternarybob/logbook/internal/services/tracker"
)

// fakeClient is a scriptable TrackerClient.
type fakeClient struct {
	authenticateFn func(ctx context.Context) (bool, error)
	listFn         func(ctx context.Context) ([]models.Issue, error)
	submitFn       func(ctx context.Context, s models.WorklogSubmission) (*models.WorklogCreated, error)
}

func (f *fakeClient) Authenticate(ctx context.Context) (bool, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx)
	}
	return true, nil
}

func (f *fakeClient) ListAssignedIssues(ctx context.Context) ([]models.Issue, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) SubmitWorklog(ctx context.Context, s models.WorklogSubmission) (*models.WorklogCreated, error) {
	if f.submitFn != nil {
		return f.submitFn(ctx, s)
	}
	return &models.WorklogCreated{}, nil
}

func newTestService(client interfaces.TrackerClient) *Service {
	s := NewService(common.TrackerConfig{Timeout: "2s", RateLimit: 5}, nil, arbor.NewLogger())
	s.newClient = func(models.Credentials) interfaces.TrackerClient { return client }
	return s
}

func testCredentials() models.Credentials {
	return models.NewCredentials("https://tracker.example.com", "user@example.com", "token")
}

func TestConnectInstallsSession(t *testing.T) {
	svc := newTestService(&fakeClient{})

	require.NoError(t, svc.Connect(context.Background(), testCredentials()))

	sess := svc.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "https://tracker.example.com", sess.Credentials.BaseURL)
	assert.Equal(t, "user@example.com", sess.Credentials.Identity)
}

func TestConnectRejectedCredentials(t *testing.T) {
	svc := newTestService(&fakeClient{
		authenticateFn: func(ctx context.Context) (bool, error) { return false, nil },
	})

	err := svc.Connect(context.Background(), testCredentials())
	require.Error(t, err)
	assert.Equal(t, tracker.ErrInvalidCredentials, tracker.KindOf(err))
	assert.Nil(t, svc.Current())
}

func TestConnectAuthenticateErrorLeavesStateUntouched(t *testing.T) {
	authErr := tracker.NewClientError(tracker.ErrTimedOut, "authenticate", fmt.Errorf("deadline exceeded"))
	svc := newTestService(&fakeClient{
		authenticateFn: func(ctx context.Context) (bool, error) { return false, authErr },
	})

	err := svc.Connect(context.Background(), testCredentials())
	require.Error(t, err)
	assert.Equal(t, tracker.ErrTimedOut, tracker.KindOf(err))
	assert.Nil(t, svc.Current())
}

func TestConnectEmptyBaseURL(t *testing.T) {
	built := 0
	svc := newTestService(nil)
	svc.newClient = func(models.Credentials) interfaces.TrackerClient {
		built++
		return &fakeClient{}
	}

	err := svc.Connect(context.Background(), models.Credentials{Secret: "token"})
	require.Error(t, err)
	assert.Equal(t, tracker.ErrNetworkUnavailable, tracker.KindOf(err))
	assert.Zero(t, built)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	svc := newTestService(&fakeClient{})

	svc.Disconnect() // nothing connected yet
	assert.Nil(t, svc.Current())

	require.NoError(t, svc.Connect(context.Background(), testCredentials()))
	svc.Disconnect()
	svc.Disconnect()
	assert.Nil(t, svc.Current())
}

func TestOperationsWithoutSessionFailFast(t *testing.T) {
	calls := 0
	svc := newTestService(&fakeClient{
		listFn: func(ctx context.Context) ([]models.Issue, error) {
			calls++
			return nil, nil
		},
		submitFn: func(ctx context.Context, s models.WorklogSubmission) (*models.WorklogCreated, error) {
			calls++
			return nil, nil
		},
	})

	_, err := svc.ListAssignedIssues(context.Background())
	require.Error(t, err)
	assert.Equal(t, tracker.ErrNotAuthenticated, tracker.KindOf(err))

	_, err = svc.SubmitWorklog(context.Background(), models.WorklogSubmission{IssueKey: "PROJ-1"})
	require.Error(t, err)
	assert.Equal(t, tracker.ErrNotAuthenticated, tracker.KindOf(err))

	assert.Zero(t, calls, "no client call may happen while disconnected")
}

func TestOperationsDelegateToLiveSession(t *testing.T) {
	svc := newTestService(&fakeClient{
		listFn: func(ctx context.Context) ([]models.Issue, error) {
			return []models.Issue{{Key: "PROJ-1", Summary: "Fix the thing"}}, nil
		},
	})
	require.NoError(t, svc.Connect(context.Background(), testCredentials()))

	issues, err := svc.ListAssignedIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "PROJ-1", issues[0].Key)
}

// A connect whose authentication completes after a later disconnect must
// not resurrect the session.
func TestStaleConnectCompletionIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	svc := newTestService(&fakeClient{
		authenticateFn: func(ctx context.Context) (bool, error) {
			close(entered)
			<-release
			return true, nil
		},
	})

	done := make(chan error, 1)
	go func() {
		done <- svc.Connect(context.Background(), testCredentials())
	}()

	<-entered
	svc.Disconnect()
	close(release)

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Equal(t, tracker.ErrNotAuthenticated, tracker.KindOf(err))
	case <-time.After(2 * time.Second):
		t.Fatal("connect did not complete")
	}
	assert.Nil(t, svc.Current())
}

func TestConnectPublishesSessionEvent(t *testing.T) {
	eventService := events.NewService(arbor.NewLogger())
	received := make(chan interfaces.Event, 1)
	require.NoError(t, eventService.Subscribe(interfaces.EventSessionConnected, func(ctx context.Context, e interfaces.Event) error {
		received <- e
		return nil
	}))

	svc := NewService(common.TrackerConfig{Timeout: "2s", RateLimit: 5}, eventService, arbor.NewLogger())
	svc.newClient = func(models.Credentials) interfaces.TrackerClient { return &fakeClient{} }

	require.NoError(t, svc.Connect(context.Background(), testCredentials()))

	select {
	case event := <-received:
		payload, ok := event.Payload.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "https://tracker.example.com", payload["base_url"])
		assert.NotContains(t, payload, "secret")
	case <-time.After(2 * time.Second):
		t.Fatal("session-connected event was not published")
	}
}

// End-to-end through the real transport and tracker client.
func TestConnectAgainstLiveServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/api/3/myself" {
			fmt.Fprint(w, `{"accountId":"abc123","displayName":"User"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(common.TrackerConfig{Timeout: "2s", RateLimit: 5}, nil, arbor.NewLogger())

	creds := models.NewCredentials(server.URL, "user@example.com", "token")
	require.NoError(t, svc.Connect(context.Background(), creds))
	require.NotNil(t, svc.Current())
}

func TestConnectUnreachableHost(t *testing.T) {
	svc := NewService(common.TrackerConfig{Timeout: "500ms", RateLimit: 5}, nil, arbor.NewLogger())

	creds := models.NewCredentials("http://127.0.0.1:1", "user@example.com", "token")
	err := svc.Connect(context.Background(), creds)
	require.Error(t, err)
	assert.Equal(t, tracker.ErrNetworkUnavailable, tracker.KindOf(err))
	assert.Nil(t, svc.Current())
}
