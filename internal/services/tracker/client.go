// Package tracker implements the domain-level client for the remote
// ticket tracker: identity verification, assigned-issue search, and
// worklog submission over an authenticated transport.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/httpclient"
	"github.com/ternarybob/logbook/internal/models"
	"golang.org/x/time/rate"
)

const (
	myselfPath  = "/rest/api/3/myself"
	searchPath  = "/rest/api/3/search/jql"
	worklogPath = "/rest/api/3/issue/%s/worklog"

	// assignedIssuesJQL scopes the search to open issues assigned to
	// the authenticated identity.
	assignedIssuesJQL = "assignee = currentUser() AND statusCategory != Done ORDER BY updated DESC"

	searchPageSize = 100
	maxSearchPages = 50

	// DefaultRateLimit is the default request rate against the tracker
	// (requests per second).
	DefaultRateLimit = 5
)

// Client is a tracker API client bound to one transport and therefore
// one set of credentials. It performs no caching and no retries.
type Client struct {
	transport *httpclient.Transport
	limiter   *rate.Limiter
	logger    arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithRateLimit sets a custom request rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a tracker client over the given transport.
func NewClient(transport *httpclient.Transport, logger arbor.ILogger, opts ...ClientOption) *Client {
	c := &Client{
		transport: transport,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:    logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// identityPayload is the subset of the "myself" response that proves
// the tracker recognized the caller.
type identityPayload struct {
	AccountID    string `json:"accountId"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
}

// Authenticate verifies the transport's credentials against the
// tracker's identity endpoint. Returns true only on a 2xx response
// carrying a recognizable identity payload, false when the tracker
// rejects the credentials outright.
func (c *Client) Authenticate(ctx context.Context) (bool, error) {
	const op = "authenticate"

	resp, err := c.send(ctx, op, http.MethodGet, myselfPath, nil)
	if err != nil {
		return false, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, classifyStatus(op, resp.StatusCode, resp.Body)
	}

	var identity identityPayload
	if err := json.Unmarshal(resp.Body, &identity); err != nil {
		return false, NewClientError(ErrProtocolMismatch, op, err)
	}
	if identity.AccountID == "" && identity.EmailAddress == "" {
		return false, NewClientError(ErrProtocolMismatch, op, fmt.Errorf("identity payload missing account fields"))
	}

	c.logger.Debug().
		Str("display_name", identity.DisplayName).
		Msg("Tracker identity verified")

	return true, nil
}

// ListAssignedIssues fetches open issues assigned to the authenticated
// identity, following the tracker's pagination until the last page. An
// empty list is a valid success.
func (c *Client) ListAssignedIssues(ctx context.Context) ([]models.Issue, error) {
	const op = "list_assigned_issues"

	issues := []models.Issue{}
	startAt := 0

	for page := 0; page < maxSearchPages; page++ {
		result, err := c.searchPage(ctx, op, startAt)
		if err != nil {
			return nil, err
		}

		for _, wireIssue := range result.Issues {
			issues = append(issues, wireIssue.ToIssue())
		}

		if result.IsLast || len(result.Issues) < searchPageSize {
			break
		}
		startAt += searchPageSize
	}

	c.logger.Debug().
		Int("count", len(issues)).
		Msg("Fetched assigned issues")

	return issues, nil
}

func (c *Client) searchPage(ctx context.Context, op string, startAt int) (*models.JiraSearchResponse, error) {
	params := url.Values{}
	params.Set("jql", assignedIssuesJQL)
	params.Set("fields", "summary,status,assignee")
	params.Set("startAt", fmt.Sprintf("%d", startAt))
	params.Set("maxResults", fmt.Sprintf("%d", searchPageSize))

	resp, err := c.send(ctx, op, http.MethodGet, searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(op, resp.StatusCode, resp.Body)
	}

	var result models.JiraSearchResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, NewClientError(ErrProtocolMismatch, op, fmt.Errorf("failed to parse search response: %w", err))
	}

	return &result, nil
}

// SubmitWorklog posts a worklog entry to the issue's worklog
// sub-resource. The duration token is validated for shape locally and
// transmitted verbatim; the tracker performs unit interpretation.
func (c *Client) SubmitWorklog(ctx context.Context, submission models.WorklogSubmission) (*models.WorklogCreated, error) {
	const op = "submit_worklog"

	if submission.IssueKey == "" {
		return nil, NewClientError(ErrNotFound, op, fmt.Errorf("issue key is empty"))
	}
	if err := models.ValidateDurationSpec(submission.DurationSpec); err != nil {
		return nil, NewClientError(ErrInvalidDuration, op, err)
	}

	body, err := json.Marshal(models.NewWorklogRequest(submission))
	if err != nil {
		return nil, NewClientError(ErrProtocolMismatch, op, err)
	}

	path := fmt.Sprintf(worklogPath, url.PathEscape(submission.IssueKey))
	resp, err := c.send(ctx, op, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(op, resp.StatusCode, resp.Body)
	}

	var created models.WorklogCreated
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, NewClientError(ErrProtocolMismatch, op, fmt.Errorf("failed to parse worklog response: %w", err))
	}

	c.logger.Info().
		Str("issue", submission.IssueKey).
		Str("time_spent", submission.DurationSpec).
		Msg("Worklog submitted")

	return &created, nil
}

// send applies the rate limiter and performs a single transport call,
// classifying transport failures into the taxonomy.
func (c *Client) send(ctx context.Context, op, method, path string, body []byte) (*httpclient.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewClientError(ErrTimedOut, op, fmt.Errorf("rate limit wait: %w", err))
	}

	resp, err := c.transport.Send(ctx, method, path, body)
	if err != nil {
		return nil, classifyTransport(op, err)
	}
	return resp, nil
}
