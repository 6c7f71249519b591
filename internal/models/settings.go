package models

// Settings is the user-controlled local state persisted across process
// restarts: last-used connection details (never the secret) and display
// preferences. Read at startup, written after a successful connect.
type Settings struct {
	ID             string `json:"id" badgerhold:"key"`
	BaseURL        string `json:"base_url"`
	Identity       string `json:"identity"`
	InsecureTLS    bool   `json:"insecure_tls"`
	StartMinimized bool   `json:"start_minimized"`
	CreatedAt      int64  `json:"created_at"`
	UpdatedAt      int64  `json:"updated_at"`
}

// DefaultSettingsID keys the single process-wide settings record.
const DefaultSettingsID = "settings"
