package models

import (
	"fmt"
	"strconv"
	"strings"
)

// WorklogSubmission is a transient time-tracking entry submitted against
// an issue. StartedAt is an ISO-8601 timestamp with an explicit UTC
// offset; DurationSpec is a compact magnitude+unit token ("2h", "30m",
// "1d") transmitted verbatim to the tracker, which performs its own
// interpretation.
type WorklogSubmission struct {
	IssueKey     string `json:"issue_key"`
	Description  string `json:"description"`
	StartedAt    string `json:"started"`
	DurationSpec string `json:"time_spent"`
}

// ValidateDurationSpec checks the token shape (positive number followed
// by m, h, or d) without converting units. Malformed tokens fail fast
// locally instead of surfacing as a remote validation error.
func ValidateDurationSpec(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return fmt.Errorf("duration is empty")
	}

	unit := spec[len(spec)-1:]
	switch unit {
	case "m", "h", "d":
	default:
		return fmt.Errorf("invalid duration unit %q: use 'm' for minutes, 'h' for hours, 'd' for days", unit)
	}

	magnitude, err := strconv.ParseFloat(spec[:len(spec)-1], 64)
	if err != nil {
		return fmt.Errorf("invalid duration magnitude in %q", spec)
	}
	if magnitude <= 0 {
		return fmt.Errorf("duration must be positive, got %q", spec)
	}

	return nil
}

// WorklogRequest is the wire body for worklog creation. The description
// is wrapped in an Atlassian Document Format comment; started and
// timeSpent pass through from the submission unmodified.
type WorklogRequest struct {
	Comment   ADFDocument `json:"comment"`
	Started   string      `json:"started"`
	TimeSpent string      `json:"timeSpent"`
}

// ADFDocument is a minimal Atlassian Document Format document: a single
// paragraph of plain text.
type ADFDocument struct {
	Type    string     `json:"type"`
	Version int        `json:"version"`
	Content []ADFBlock `json:"content"`
}

type ADFBlock struct {
	Type    string    `json:"type"`
	Content []ADFText `json:"content"`
}

type ADFText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewWorklogRequest builds the wire request for a submission.
func NewWorklogRequest(submission WorklogSubmission) WorklogRequest {
	return WorklogRequest{
		Comment: ADFDocument{
			Type:    "doc",
			Version: 1,
			Content: []ADFBlock{
				{
					Type: "paragraph",
					Content: []ADFText{
						{Type: "text", Text: submission.Description},
					},
				},
			},
		},
		Started:   submission.StartedAt,
		TimeSpent: submission.DurationSpec,
	}
}

// WorklogCreated is the tracker's response to a successful worklog
// creation.
type WorklogCreated struct {
	ID        string `json:"id"`
	IssueID   string `json:"issueId"`
	Started   string `json:"started"`
	TimeSpent string `json:"timeSpent"`
}
