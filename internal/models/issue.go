package models

// Issue is the read-only projection of a tracker issue shown to the
// foreground. It is re-fetched on demand and never cached.
type Issue struct {
	Key        string    `json:"key"`
	Summary    string    `json:"summary"`
	StatusName string    `json:"status"`
	Assignee   *Assignee `json:"assignee,omitempty"`
}

// Assignee identifies the user an issue is assigned to.
type Assignee struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// JiraIssue is the wire shape of an issue in Jira search results.
type JiraIssue struct {
	Key    string     `json:"key"`
	ID     string     `json:"id"`
	Fields JiraFields `json:"fields"`
}

// JiraFields holds the subset of issue fields requested by the search
// query (summary,status,assignee).
type JiraFields struct {
	Summary  string        `json:"summary"`
	Status   JiraStatus    `json:"status"`
	Assignee *JiraAssignee `json:"assignee"`
}

type JiraStatus struct {
	Name string `json:"name"`
}

type JiraAssignee struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// JiraSearchResponse is the paginated search result envelope.
type JiraSearchResponse struct {
	Issues     []JiraIssue `json:"issues"`
	IsLast     bool        `json:"isLast"`
	Total      int         `json:"total"`
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
}

// ToIssue projects the wire shape into the domain model.
func (j JiraIssue) ToIssue() Issue {
	issue := Issue{
		Key:        j.Key,
		Summary:    j.Fields.Summary,
		StatusName: j.Fields.Status.Name,
	}
	if j.Fields.Assignee != nil {
		issue.Assignee = &Assignee{
			DisplayName: j.Fields.Assignee.DisplayName,
			Email:       j.Fields.Assignee.EmailAddress,
		}
	}
	return issue
}
