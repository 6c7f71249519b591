package models

import (
	"strings"
	"testing"
)

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.atlassian.net", "https://example.atlassian.net"},
		{"https://example.atlassian.net/", "https://example.atlassian.net"},
		{"https://example.atlassian.net//", "https://example.atlassian.net"},
		{"  https://example.atlassian.net/  ", "https://example.atlassian.net"},
	}

	for _, tt := range tests {
		if got := NormalizeBaseURL(tt.input); got != tt.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCredentialsStringNeverExposesSecret(t *testing.T) {
	creds := NewCredentials("https://example.atlassian.net/", "user@example.com", "super-secret-token")

	rendered := creds.String()
	if strings.Contains(rendered, "super-secret-token") {
		t.Errorf("Credentials.String() leaked the secret: %q", rendered)
	}
	if !strings.Contains(rendered, "user@example.com") {
		t.Errorf("Credentials.String() should include the identity: %q", rendered)
	}
}

func TestCredentialsStringTokenOnly(t *testing.T) {
	creds := NewCredentials("https://example.atlassian.net", "", "pat-token")

	rendered := creds.String()
	if strings.Contains(rendered, "pat-token") {
		t.Errorf("Credentials.String() leaked the token: %q", rendered)
	}
}
