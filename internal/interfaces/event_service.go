package interfaces

import "context"

// EventType represents different event types in the system
type EventType string

const (
	// EventReminderDue fires when the daily reminder elapses.
	EventReminderDue EventType = "daily-reminder"

	// EventTestNotification is triggered on demand to verify the
	// notification path end to end.
	EventTestNotification EventType = "test-notification"

	// EventSurfaceHide and EventSurfaceShow signal the foreground
	// surface to move to or from the background.
	EventSurfaceHide EventType = "surface-hide"
	EventSurfaceShow EventType = "surface-show"

	EventSessionConnected    EventType = "session-connected"
	EventSessionDisconnected EventType = "session-disconnected"
)

// Event represents a system event
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventHandler is a function that handles events
type EventHandler func(ctx context.Context, event Event) error

// EventService manages the pub/sub event bus
type EventService interface {
	// Subscribe to an event type
	Subscribe(eventType EventType, handler EventHandler) error

	// Publish an event to all subscribers asynchronously
	Publish(ctx context.Context, event Event) error

	// PublishSync publishes an event and waits for all handlers to complete
	PublishSync(ctx context.Context, event Event) error

	// Close shuts down the event service
	Close() error
}
