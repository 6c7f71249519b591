// Package presentation mediates between the background process and the
// foreground surface: show/hide commands and delivery of reminder and
// test events to whichever surface is currently attached, falling back
// to a system notification when none is.
package presentation

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
)

// Bridge implements interfaces.PresentationService.
type Bridge struct {
	mu       sync.RWMutex
	surfaces map[string]interfaces.Surface
	notifier interfaces.Notifier
	logger   arbor.ILogger
}

// NewBridge creates a presentation bridge and subscribes it to the
// events it forwards to the foreground.
func NewBridge(eventService interfaces.EventService, notifier interfaces.Notifier, logger arbor.ILogger) (*Bridge, error) {
	b := &Bridge{
		surfaces: make(map[string]interfaces.Surface),
		notifier: notifier,
		logger:   logger,
	}

	forward := func(ctx context.Context, event interfaces.Event) error {
		b.Dispatch(event)
		return nil
	}

	for _, eventType := range []interfaces.EventType{
		interfaces.EventReminderDue,
		interfaces.EventTestNotification,
	} {
		if err := eventService.Subscribe(eventType, forward); err != nil {
			return nil, fmt.Errorf("failed to subscribe bridge to %s: %w", eventType, err)
		}
	}

	return b, nil
}

// AttachSurface registers a foreground surface for event delivery.
func (b *Bridge) AttachSurface(surface interfaces.Surface) {
	b.mu.Lock()
	b.surfaces[surface.ID()] = surface
	count := len(b.surfaces)
	b.mu.Unlock()

	b.logger.Info().
		Str("surface_id", surface.ID()).
		Int("attached", count).
		Msg("Presentation surface attached")
}

// DetachSurface removes a previously attached surface.
func (b *Bridge) DetachSurface(surface interfaces.Surface) {
	b.mu.Lock()
	delete(b.surfaces, surface.ID())
	count := len(b.surfaces)
	b.mu.Unlock()

	b.logger.Info().
		Str("surface_id", surface.ID()).
		Int("attached", count).
		Msg("Presentation surface detached")
}

// SurfaceCount returns the number of attached surfaces.
func (b *Bridge) SurfaceCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.surfaces)
}

// MinimizeToBackground signals the foreground to hide while the process
// keeps running. Reports ErrPresentationUnavailable when no surface is
// attached; callers treat that as non-fatal.
func (b *Bridge) MinimizeToBackground() error {
	return b.deliverToAll(interfaces.Event{Type: interfaces.EventSurfaceHide})
}

// RestoreToForeground reverses MinimizeToBackground.
func (b *Bridge) RestoreToForeground() error {
	return b.deliverToAll(interfaces.Event{Type: interfaces.EventSurfaceShow})
}

// Dispatch forwards an event to the attached surfaces, or surfaces it
// as a system notification when none is attached. Best-effort: delivery
// failures detach the surface; notification failures are logged and
// swallowed so the scheduler is never blocked.
func (b *Bridge) Dispatch(event interfaces.Event) {
	if b.deliverToAll(event) == nil {
		return
	}

	title, message := notificationContent(event)
	if err := b.notifier.Notify(title, message); err != nil {
		b.logger.Warn().
			Err(err).
			Str("event_type", string(event.Type)).
			Msg("System notification failed")
		return
	}

	b.logger.Debug().
		Str("event_type", string(event.Type)).
		Msg("Event surfaced as system notification")
}

func (b *Bridge) deliverToAll(event interfaces.Event) error {
	b.mu.RLock()
	surfaces := make([]interfaces.Surface, 0, len(b.surfaces))
	for _, surface := range b.surfaces {
		surfaces = append(surfaces, surface)
	}
	b.mu.RUnlock()

	if len(surfaces) == 0 {
		return interfaces.ErrPresentationUnavailable
	}

	for _, surface := range surfaces {
		if err := surface.Deliver(event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("surface_id", surface.ID()).
				Msg("Surface delivery failed, detaching")
			b.DetachSurface(surface)
		}
	}

	return nil
}

// notificationContent maps an event to system notification text. This
// is presentation-layer rendering; the core taxonomy stays typed.
func notificationContent(event interfaces.Event) (title, message string) {
	switch event.Type {
	case interfaces.EventReminderDue:
		title = "Logbook"
		message = "Time to log your work for today"
	case interfaces.EventTestNotification:
		title = "Logbook"
		message = "Test notification - the notification path works"
	default:
		title = "Logbook"
		message = string(event.Type)
	}

	if payload, ok := event.Payload.(map[string]string); ok {
		if m := payload["message"]; m != "" {
			message = m
		}
	}

	return title, message
}
