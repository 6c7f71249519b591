package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJiraIssueToIssue(t *testing.T) {
	wire := JiraIssue{
		Key: "PROJ-42",
		Fields: JiraFields{
			Summary: "Fix the flux capacitor",
			Status:  JiraStatus{Name: "In Progress"},
			Assignee: &JiraAssignee{
				DisplayName:  "Jane Doe",
				EmailAddress: "jane@example.com",
			},
		},
	}

	issue := wire.ToIssue()
	assert.Equal(t, "PROJ-42", issue.Key)
	assert.Equal(t, "Fix the flux capacitor", issue.Summary)
	assert.Equal(t, "In Progress", issue.StatusName)
	require.NotNil(t, issue.Assignee)
	assert.Equal(t, "Jane Doe", issue.Assignee.DisplayName)
	assert.Equal(t, "jane@example.com", issue.Assignee.Email)
}

func TestJiraIssueToIssueUnassigned(t *testing.T) {
	wire := JiraIssue{
		Key: "PROJ-7",
		Fields: JiraFields{
			Summary: "Unassigned task",
			Status:  JiraStatus{Name: "To Do"},
		},
	}

	issue := wire.ToIssue()
	assert.Nil(t, issue.Assignee)
}

func TestJiraSearchResponseParsing(t *testing.T) {
	payload := `{
		"issues": [
			{"key": "PROJ-1", "fields": {"summary": "First", "status": {"name": "To Do"}, "assignee": null}},
			{"key": "PROJ-2", "fields": {"summary": "Second", "status": {"name": "Done"}, "assignee": {"displayName": "Bob", "emailAddress": "bob@example.com"}}}
		],
		"isLast": true,
		"total": 2,
		"startAt": 0,
		"maxResults": 100
	}`

	var result JiraSearchResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	require.Len(t, result.Issues, 2)
	assert.True(t, result.IsLast)
	assert.Nil(t, result.Issues[0].Fields.Assignee)
	require.NotNil(t, result.Issues[1].Fields.Assignee)
	assert.Equal(t, "Bob", result.Issues[1].Fields.Assignee.DisplayName)
}
