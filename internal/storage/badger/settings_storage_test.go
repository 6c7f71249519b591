package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/common"
	"github.com/ternarybob/logbook/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	db, err := NewBadgerDB(arbor.NewLogger(), &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "logbook-test"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestLoadSavedWhenEmpty(t *testing.T) {
	storage := NewSettingsStorage(newTestDB(t), arbor.NewLogger())

	settings, err := storage.LoadSaved(context.Background())
	require.NoError(t, err)
	assert.Nil(t, settings, "no saved settings is not an error")
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	storage := NewSettingsStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &models.Settings{
		BaseURL:        "https://tracker.example.com",
		Identity:       "user@example.com",
		StartMinimized: true,
	}))

	loaded, err := storage.LoadSaved(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.DefaultSettingsID, loaded.ID)
	assert.Equal(t, "https://tracker.example.com", loaded.BaseURL)
	assert.Equal(t, "user@example.com", loaded.Identity)
	assert.True(t, loaded.StartMinimized)
	assert.NotZero(t, loaded.CreatedAt)
	assert.NotZero(t, loaded.UpdatedAt)
}

func TestSaveOverwritesPrevious(t *testing.T) {
	storage := NewSettingsStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &models.Settings{BaseURL: "https://old.example.com"}))

	first, err := storage.LoadSaved(ctx)
	require.NoError(t, err)

	require.NoError(t, storage.Save(ctx, &models.Settings{
		BaseURL:   "https://new.example.com",
		CreatedAt: first.CreatedAt,
	}))

	loaded, err := storage.LoadSaved(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", loaded.BaseURL)
	assert.Equal(t, first.CreatedAt, loaded.CreatedAt, "creation time survives overwrites")
}

func TestSaveRejectsNil(t *testing.T) {
	storage := NewSettingsStorage(newTestDB(t), arbor.NewLogger())
	assert.Error(t, storage.Save(context.Background(), nil))
}
