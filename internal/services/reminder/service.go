// Package reminder runs the unattended daily reminder: a cron-backed
// timer that fires at a fixed local wall-clock time every day,
// independent of session state or any attached foreground surface.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
)

// Service implements interfaces.ReminderService on top of a single-entry
// cron schedule. The underlying timer recomputes the next occurrence
// from the current time after every fire, so a wake-up after a long
// system suspend fires the overdue reminder exactly once and never
// replays a backlog of missed days.
type Service struct {
	mu          sync.Mutex
	cron        *cron.Cron
	entryID     cron.EntryID
	state       interfaces.ReminderState
	fireHour    int
	fireMinute  int
	lastFiredAt *time.Time

	eventService interfaces.EventService
	logger       arbor.ILogger
}

// NewService creates a reminder service publishing to the given event
// bus.
func NewService(eventService interfaces.EventService, logger arbor.ILogger) *Service {
	return &Service{
		state:        interfaces.ReminderIdle,
		eventService: eventService,
		logger:       logger,
	}
}

// Start arms the reminder for the next occurrence of fireHour:fireMinute
// local time (same day if not yet passed, otherwise the next day).
// Calling Start while already armed is a no-op; at most one timer is
// ever active.
func (s *Service) Start(fireHour, fireMinute int) error {
	if fireHour < 0 || fireHour > 23 {
		return fmt.Errorf("invalid fire hour %d: must be 0-23", fireHour)
	}
	if fireMinute < 0 || fireMinute > 59 {
		return fmt.Errorf("invalid fire minute %d: must be 0-59", fireMinute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != interfaces.ReminderIdle {
		s.logger.Debug().Msg("Reminder scheduler already armed")
		return nil
	}

	c := cron.New()
	entryID, err := c.AddFunc(fmt.Sprintf("%d %d * * *", fireMinute, fireHour), s.fire)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	c.Start()

	s.cron = c
	s.entryID = entryID
	s.fireHour = fireHour
	s.fireMinute = fireMinute
	s.state = interfaces.ReminderArmed

	s.logger.Info().
		Int("hour", fireHour).
		Int("minute", fireMinute).
		Str("next_fire_at", NextOccurrence(time.Now(), fireHour, fireMinute).Format(time.RFC3339)).
		Msg("Reminder scheduler armed")

	return nil
}

// Stop cancels the pending wait and returns the scheduler to idle. This
// is the only transition out of the armed cycle.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	if s.state != interfaces.ReminderIdle {
		s.state = interfaces.ReminderIdle
		s.logger.Info().Msg("Reminder scheduler stopped")
	}
}

// IsRunning returns true while the scheduler is armed.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != interfaces.ReminderIdle
}

// Status reports the current state, fire time, and next occurrence.
func (s *Service) Status() *interfaces.ReminderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := &interfaces.ReminderStatus{
		State:       s.state,
		FireHour:    s.fireHour,
		FireMinute:  s.fireMinute,
		LastFiredAt: s.lastFiredAt,
	}

	if s.cron != nil {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			status.NextFireAt = &next
		}
	}

	return status
}

// fire runs on the cron goroutine when the wall-clock time elapses. The
// cron entry immediately re-arms itself for the following day.
func (s *Service) fire() {
	now := time.Now()

	s.mu.Lock()
	s.state = interfaces.ReminderFired
	s.lastFiredAt = &now
	s.mu.Unlock()

	s.logger.Info().
		Str("fired_at", now.Format(time.RFC3339)).
		Msg("Daily reminder due")

	if err := s.eventService.PublishSync(context.Background(), interfaces.Event{
		Type: interfaces.EventReminderDue,
		Payload: map[string]string{
			"fired_at": now.Format(time.RFC3339),
			"message":  "Time to log your work for today",
		},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("Reminder event delivery reported errors")
	}

	s.mu.Lock()
	if s.state == interfaces.ReminderFired {
		s.state = interfaces.ReminderArmed
	}
	s.mu.Unlock()
}

// NextOccurrence rounds forward to the next occurrence of hour:minute in
// now's location: same day when not yet passed, otherwise the next day.
// The result is always strictly in the future.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
