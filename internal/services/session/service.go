// Package session owns the process-wide tracker connection state.
// Connect and Disconnect are the only mutations; a generation counter
// discards stale connect completions so a late-arriving authentication
// can never resurrect a session after a later disconnect.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/common"
	"github.com/ternarybob/logbook/internal/httpclient"
	"github.com/ternarybob/logbook/internal/interfaces"
	"github.com/ternarybob/logbook/internal/models"
	"github.com/ternarybob/logbook/internal/services/tracker"
)

// Service implements interfaces.SessionService.
type Service struct {
	mu         sync.Mutex
	session    *interfaces.Session
	generation uint64

	cfg          common.TrackerConfig
	eventService interfaces.EventService
	logger       arbor.ILogger

	// newClient builds the transport and client for a connect attempt.
	// Overridable in tests to point at a local server.
	newClient func(creds models.Credentials) interfaces.TrackerClient
}

// NewService creates a session service using the configured transport
// policy (timeout, TLS trust, rate limit).
func NewService(cfg common.TrackerConfig, eventService interfaces.EventService, logger arbor.ILogger) *Service {
	s := &Service{
		cfg:          cfg,
		eventService: eventService,
		logger:       logger,
	}
	s.newClient = s.buildClient
	return s
}

func (s *Service) buildClient(creds models.Credentials) interfaces.TrackerClient {
	timeout := httpclient.DefaultTimeout
	if d, err := time.ParseDuration(s.cfg.Timeout); err == nil && d > 0 {
		timeout = d
	}

	transport := httpclient.NewTransport(httpclient.Options{
		Credentials: creds,
		InsecureTLS: s.cfg.InsecureTLS,
		Timeout:     timeout,
	}, s.logger)

	return tracker.NewClient(transport, s.logger, tracker.WithRateLimit(s.cfg.RateLimit))
}

// Connect authenticates the credentials and installs the session on
// success. Any failure leaves the current state untouched; a stale
// completion superseded by a later connect or disconnect is discarded.
func (s *Service) Connect(ctx context.Context, creds models.Credentials) error {
	const op = "connect"

	if creds.BaseURL == "" {
		return tracker.NewClientError(tracker.ErrNetworkUnavailable, op, fmt.Errorf("base URL is empty"))
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	client := s.newClient(creds)
	s.mu.Unlock()

	// Authenticate without holding the lock; the generation check below
	// rejects this completion if state moved on in the meantime.
	ok, err := client.Authenticate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return tracker.NewClientError(tracker.ErrInvalidCredentials, op, fmt.Errorf("tracker rejected credentials"))
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Warn().
			Str("base_url", creds.BaseURL).
			Msg("Discarding stale connect completion")
		return tracker.NewClientError(tracker.ErrNotAuthenticated, op, fmt.Errorf("connect superseded by a later connect or disconnect"))
	}
	s.session = &interfaces.Session{
		Credentials: creds,
		Client:      client,
		Generation:  gen,
	}
	s.mu.Unlock()

	s.logger.Info().
		Str("base_url", creds.BaseURL).
		Msg("Tracker session established")

	s.publish(ctx, interfaces.EventSessionConnected, map[string]string{
		"base_url": creds.BaseURL,
		"identity": creds.Identity,
	})

	return nil
}

// Disconnect idempotently clears the session. The remote protocol is
// stateless basic auth, so disconnect is purely local state clearing.
func (s *Service) Disconnect() {
	s.mu.Lock()
	s.generation++
	had := s.session != nil
	s.session = nil
	s.mu.Unlock()

	if !had {
		return
	}

	s.logger.Info().Msg("Tracker session cleared")
	s.publish(context.Background(), interfaces.EventSessionDisconnected, nil)
}

// Current returns the live session, or nil when disconnected.
func (s *Service) Current() *interfaces.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// ListAssignedIssues runs the issue search against the live session.
// Fails immediately with a not-authenticated error when no session is
// live; no network call is attempted in that case.
func (s *Service) ListAssignedIssues(ctx context.Context) ([]models.Issue, error) {
	sess := s.Current()
	if sess == nil {
		return nil, tracker.NotAuthenticatedError("list_assigned_issues")
	}
	return sess.Client.ListAssignedIssues(ctx)
}

// SubmitWorklog posts a worklog entry through the live session.
func (s *Service) SubmitWorklog(ctx context.Context, submission models.WorklogSubmission) (*models.WorklogCreated, error) {
	sess := s.Current()
	if sess == nil {
		return nil, tracker.NotAuthenticatedError("submit_worklog")
	}
	return sess.Client.SubmitWorklog(ctx, submission)
}

func (s *Service) publish(ctx context.Context, eventType interfaces.EventType, payload interface{}) {
	if s.eventService == nil {
		return
	}
	if err := s.eventService.Publish(ctx, interfaces.Event{Type: eventType, Payload: payload}); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("Failed to publish session event")
	}
}
