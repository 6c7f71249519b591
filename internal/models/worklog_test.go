package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDurationSpec(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"2h", false},
		{"30m", false},
		{"1d", false},
		{"1.5h", false},
		{"  45m  ", false},
		{"", true},
		{"2", true},
		{"h", true},
		{"2x", true},
		{"-1h", true},
		{"0m", true},
		{"abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			err := ValidateDurationSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Duration tokens must reach the wire verbatim; the tracker interprets
// units itself.
func TestWorklogRequestPassesDurationThrough(t *testing.T) {
	for _, spec := range []string{"2h", "30m", "1d"} {
		req := NewWorklogRequest(WorklogSubmission{
			IssueKey:     "PROJ-123",
			Description:  "worked on the thing",
			StartedAt:    "2026-08-31T09:00:00.000+1000",
			DurationSpec: spec,
		})

		assert.Equal(t, spec, req.TimeSpent)
		assert.Equal(t, "2026-08-31T09:00:00.000+1000", req.Started)
	}
}

func TestWorklogRequestCommentShape(t *testing.T) {
	req := NewWorklogRequest(WorklogSubmission{
		IssueKey:     "PROJ-1",
		Description:  "daily standup",
		StartedAt:    "2026-08-31T09:00:00.000+0000",
		DurationSpec: "15m",
	})

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	comment, ok := decoded["comment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "doc", comment["type"])
	assert.Equal(t, float64(1), comment["version"])

	content := comment["content"].([]interface{})
	require.Len(t, content, 1)
	paragraph := content[0].(map[string]interface{})
	assert.Equal(t, "paragraph", paragraph["type"])

	text := paragraph["content"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "text", text["type"])
	assert.Equal(t, "daily standup", text["text"])
}
