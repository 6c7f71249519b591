package models

import "strings"

// Credentials is the immutable authentication material for a tracker
// connection. Identity is the account email and may be empty when a
// bearer token is used instead of basic auth. The secret is never logged
// and never serialized.
type Credentials struct {
	BaseURL  string
	Identity string
	Secret   string
}

// NewCredentials normalizes the base URL (scheme-qualified, no trailing
// slash) and returns a credentials value.
func NewCredentials(baseURL, identity, secret string) Credentials {
	return Credentials{
		BaseURL:  NormalizeBaseURL(baseURL),
		Identity: strings.TrimSpace(identity),
		Secret:   secret,
	}
}

// NormalizeBaseURL trims whitespace and trailing slashes from a tracker
// base URL so paths can be appended directly.
func NormalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// String implements fmt.Stringer without exposing the secret.
func (c Credentials) String() string {
	return c.BaseURL + " (" + c.redactedIdentity() + ")"
}

func (c Credentials) redactedIdentity() string {
	if c.Identity == "" {
		return "token auth"
	}
	return c.Identity
}
