package tracker

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/logbook/internal/httpclient"
)

// ErrorKind enumerates the tracker error taxonomy. Classification
// happens once at the client boundary; callers switch on the kind and
// never inspect raw status codes or error strings.
type ErrorKind string

const (
	ErrNetworkUnavailable     ErrorKind = "network_unavailable"
	ErrTimedOut               ErrorKind = "timed_out"
	ErrUntrustedCertificate   ErrorKind = "untrusted_certificate"
	ErrInvalidCredentials     ErrorKind = "invalid_credentials"
	ErrInsufficientPermission ErrorKind = "insufficient_permission"
	ErrNotFound               ErrorKind = "not_found"
	ErrRemoteServerError      ErrorKind = "remote_server_error"
	ErrProtocolMismatch       ErrorKind = "protocol_mismatch"
	ErrNotAuthenticated       ErrorKind = "not_authenticated"
	ErrInvalidDuration        ErrorKind = "invalid_duration"
)

// ClientError is a classified tracker operation failure.
type ClientError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ClientError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError builds a classified error for an operation.
func NewClientError(kind ErrorKind, op string, err error) *ClientError {
	return &ClientError{Kind: kind, Op: op, Err: err}
}

// NotAuthenticatedError reports an operation attempted without a live
// session. No network call is made in this case.
func NotAuthenticatedError(op string) *ClientError {
	return &ClientError{Kind: ErrNotAuthenticated, Op: op}
}

// KindOf extracts the error kind from a classified error chain.
// Unclassified errors report ErrProtocolMismatch, the catch-all for
// responses the client cannot interpret.
func KindOf(err error) ErrorKind {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind
	}
	return ErrProtocolMismatch
}

// classifyStatus maps an unexpected HTTP status to an error kind.
func classifyStatus(op string, status int, body []byte) *ClientError {
	var kind ErrorKind
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrInvalidCredentials
	case status == http.StatusForbidden:
		kind = ErrInsufficientPermission
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status >= 500:
		kind = ErrRemoteServerError
	default:
		kind = ErrProtocolMismatch
	}

	detail := fmt.Errorf("HTTP %d: %s", status, truncate(body, 256))
	return &ClientError{Kind: kind, Op: op, Err: detail}
}

// classifyTransport maps transport-level failures into the taxonomy.
func classifyTransport(op string, err error) *ClientError {
	var transportErr *httpclient.TransportError
	if errors.As(err, &transportErr) {
		switch transportErr.Kind {
		case httpclient.TransportTimeout:
			return &ClientError{Kind: ErrTimedOut, Op: op, Err: err}
		case httpclient.TransportTLS:
			return &ClientError{Kind: ErrUntrustedCertificate, Op: op, Err: err}
		default:
			return &ClientError{Kind: ErrNetworkUnavailable, Op: op, Err: err}
		}
	}
	return &ClientError{Kind: ErrNetworkUnavailable, Op: op, Err: err}
}

func truncate(body []byte, max int) string {
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
