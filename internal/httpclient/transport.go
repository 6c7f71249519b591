package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/models"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Transport wraps transport-level concerns for the remote tracker: base
// URL, TLS trust policy, request timeout, and the authorization header
// derived once at construction. No retries; a failed attempt surfaces
// immediately.
type Transport struct {
	baseURL    string
	authHeader string
	client     *http.Client
	logger     arbor.ILogger
}

// Options configures a Transport.
type Options struct {
	Credentials models.Credentials
	InsecureTLS bool
	Timeout     time.Duration
}

// NewTransport builds a transport for the given credentials. When
// InsecureTLS is set, servers presenting self-signed or otherwise
// unverified certificates are accepted; this is an explicit user-opted
// trust downgrade, never a default.
func NewTransport(opts Options, logger arbor.ILogger) *Transport {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	if opts.InsecureTLS {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Transport{
		baseURL:    opts.Credentials.BaseURL,
		authHeader: authHeaderValue(opts.Credentials),
		client:     client,
		logger:     logger,
	}
}

// authHeaderValue derives the authorization header once. With an
// identity present the tracker expects basic auth; without one the
// secret is a personal access token sent as a bearer.
func authHeaderValue(creds models.Credentials) string {
	if creds.Identity == "" {
		return "Bearer " + creds.Secret
	}
	pair := creds.Identity + ":" + creds.Secret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(pair))
}

// BaseURL returns the normalized tracker base URL.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Response carries the status and body of a completed request. Status
// interpretation belongs to the caller.
type Response struct {
	StatusCode int
	Body       []byte
}

// Send performs a single authenticated request against the tracker.
// Failures below the HTTP layer are returned as *TransportError; any
// HTTP response, success or not, is returned to the caller unclassified.
func (t *Transport) Send(ctx context.Context, method, path string, body []byte) (*Response, error) {
	reqURL := t.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", t.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if t.logger != nil {
		t.logger.Debug().
			Str("method", method).
			Str("url", reqURL).
			Msg("Tracker request")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(reqURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Kind: TransportNetwork, URL: reqURL, Err: err}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// TransportKind classifies failures below the HTTP layer.
type TransportKind string

const (
	TransportNetwork TransportKind = "network" // DNS or connect failure
	TransportTimeout TransportKind = "timeout"
	TransportTLS     TransportKind = "tls"
)

// TransportError is a classified transport-level failure.
type TransportError struct {
	Kind TransportKind
	URL  string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s error for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func classifyTransportError(reqURL string, err error) *TransportError {
	kind := TransportNetwork

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		kind = TransportTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		kind = TransportTimeout
	}
	if isCertificateError(err) {
		kind = TransportTLS
	}

	return &TransportError{Kind: kind, URL: reqURL, Err: err}
}

func isCertificateError(err error) bool {
	var (
		verifyErr *tls.CertificateVerificationError
		unkAuth   x509.UnknownAuthorityError
		hostname  x509.HostnameError
		invalid   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &unkAuth) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid)
}
