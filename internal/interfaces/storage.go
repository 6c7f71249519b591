package interfaces

import (
	"context"

	"github.com/ternarybob/logbook/internal/models"
)

// SettingsStorage persists the user's last-used connection details and
// display preferences. The core consumes it as an injected
// loadSaved/save pair; it never stores secrets.
type SettingsStorage interface {
	// LoadSaved returns the stored settings, or (nil, nil) when none
	// have been saved yet.
	LoadSaved(ctx context.Context) (*models.Settings, error)

	// Save stores the settings, overwriting any previous record.
	Save(ctx context.Context, settings *models.Settings) error
}

// StorageManager owns the storage backend lifecycle.
type StorageManager interface {
	SettingsStorage() SettingsStorage
	Close() error
}
