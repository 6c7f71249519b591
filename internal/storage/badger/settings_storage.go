package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
	"github.com/ternarybob/logbook/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SettingsStorage implements the SettingsStorage interface for Badger.
// It holds the single process-wide settings record: last-used connection
// details (never the secret) and display preferences.
type SettingsStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSettingsStorage creates a new SettingsStorage instance
func NewSettingsStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SettingsStorage {
	return &SettingsStorage{
		db:     db,
		logger: logger,
	}
}

// LoadSaved returns the stored settings, or (nil, nil) when none have
// been saved yet.
func (s *SettingsStorage) LoadSaved(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := s.db.Store().Get(models.DefaultSettingsID, &settings); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

// Save stores the settings, overwriting any previous record.
func (s *SettingsStorage) Save(ctx context.Context, settings *models.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	settings.ID = models.DefaultSettingsID
	now := time.Now().Unix()
	if settings.CreatedAt == 0 {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	if err := s.db.Store().Upsert(settings.ID, settings); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}

	s.logger.Debug().
		Str("base_url", settings.BaseURL).
		Msg("Settings saved")

	return nil
}
