package interfaces

import "errors"

// ErrPresentationUnavailable reports that no foreground surface is
// attached to act on a show/hide command. Non-fatal by contract.
var ErrPresentationUnavailable = errors.New("no presentation surface attached")

// Surface is a foreground presentation surface attached to the
// background process (a WebSocket client in practice).
type Surface interface {
	// ID identifies the surface for logging and detach.
	ID() string

	// Deliver pushes an event to the surface. Must not block
	// indefinitely; a failed delivery detaches the surface.
	Deliver(event Event) error
}

// PresentationService mediates between the background process and
// whatever foreground surface is currently attached.
type PresentationService interface {
	// AttachSurface registers a foreground surface for event delivery.
	AttachSurface(surface Surface)

	// DetachSurface removes a previously attached surface.
	DetachSurface(surface Surface)

	// SurfaceCount returns the number of attached surfaces.
	SurfaceCount() int

	// MinimizeToBackground signals the foreground to hide while the
	// process keeps running.
	MinimizeToBackground() error

	// RestoreToForeground reverses MinimizeToBackground.
	RestoreToForeground() error

	// Dispatch forwards an event to the attached surfaces, or surfaces
	// it as a system notification when none is attached. Best-effort;
	// never blocks the caller.
	Dispatch(event Event)
}

// Notifier delivers a system-level notification outside any attached
// surface.
type Notifier interface {
	Notify(title, message string) error
}
