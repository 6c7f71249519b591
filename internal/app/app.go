package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/common"
	"github.com/ternarybob/logbook/internal/handlers"
	"github.com/ternarybob/logbook/internal/interfaces"
	"github.com/ternarybob/logbook/internal/models"
	"github.com/ternarybob/logbook/internal/services/events"
	"github.com/ternarybob/logbook/internal/services/presentation"
	"github.com/ternarybob/logbook/internal/services/reminder"
	"github.com/ternarybob/logbook/internal/services/session"
	"github.com/ternarybob/logbook/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager

	EventService    interfaces.EventService
	SessionService  *session.Service
	ReminderService *reminder.Service
	Bridge          *presentation.Bridge

	SavedSettings *models.Settings

	SessionHandler      *handlers.SessionHandler
	IssueHandler        *handlers.IssueHandler
	WorklogHandler      *handlers.WorklogHandler
	PresentationHandler *handlers.PresentationHandler
	ReminderHandler     *handlers.ReminderHandler
	WSHandler           *handlers.WebSocketHandler
}

// New wires the application: storage, event bus, session, reminder,
// presentation bridge, and the HTTP handler layer.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	eventService := events.NewService(logger)
	sessionService := session.NewService(config.Tracker, eventService, logger)
	reminderService := reminder.NewService(eventService, logger)

	notifier := presentation.NewSystemNotifier(logger)
	bridge, err := presentation.NewBridge(eventService, notifier, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize presentation bridge: %w", err)
	}

	a := &App{
		Config:          config,
		Logger:          logger,
		StorageManager:  storageManager,
		EventService:    eventService,
		SessionService:  sessionService,
		ReminderService: reminderService,
		Bridge:          bridge,
	}

	settingsStorage := storageManager.SettingsStorage()
	a.SessionHandler = handlers.NewSessionHandler(sessionService, settingsStorage, logger)
	a.IssueHandler = handlers.NewIssueHandler(sessionService, logger)
	a.WorklogHandler = handlers.NewWorklogHandler(sessionService, logger)
	a.PresentationHandler = handlers.NewPresentationHandler(bridge, eventService, logger)
	a.ReminderHandler = handlers.NewReminderHandler(reminderService, logger)
	a.WSHandler = handlers.NewWebSocketHandler(bridge, logger)

	a.loadSavedSettings()
	a.startReminder()

	// Reminders are day-based, not session-based: the scheduler keeps
	// running across disconnects, but a successful connect re-arms it in
	// case it was never started. Start is idempotent.
	if err := eventService.Subscribe(interfaces.EventSessionConnected, func(ctx context.Context, event interfaces.Event) error {
		return a.startReminderIfEnabled()
	}); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to subscribe reminder re-arm: %w", err)
	}

	return a, nil
}

func (a *App) loadSavedSettings() {
	settings, err := a.StorageManager.SettingsStorage().LoadSaved(context.Background())
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to load saved settings")
		return
	}
	if settings == nil {
		a.Logger.Debug().Msg("No saved settings found")
		return
	}

	a.SavedSettings = settings
	a.Logger.Info().
		Str("base_url", settings.BaseURL).
		Bool("start_minimized", settings.StartMinimized).
		Msg("Loaded saved settings")
}

func (a *App) startReminder() {
	if err := a.startReminderIfEnabled(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to start reminder scheduler")
	}
}

func (a *App) startReminderIfEnabled() error {
	if !a.Config.Reminder.Enabled {
		return nil
	}
	return a.ReminderService.Start(a.Config.Reminder.Hour, a.Config.Reminder.Minute)
}

// Close releases all application resources.
func (a *App) Close() {
	a.ReminderService.Stop()
	a.SessionService.Disconnect()

	if err := a.EventService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close event service")
	}
	if err := a.StorageManager.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close storage")
	}

	a.Logger.Info().Msg("Application closed")
}
