package presentation

import (
	"github.com/gen2brain/beeep"
	"github.com/ternarybob/arbor"
)

// SystemNotifier delivers desktop notifications through the operating
// system's notification facility.
type SystemNotifier struct {
	logger arbor.ILogger
}

// NewSystemNotifier creates a system notifier.
func NewSystemNotifier(logger arbor.ILogger) *SystemNotifier {
	return &SystemNotifier{logger: logger}
}

// Notify shows a system notification. Best-effort; some headless
// environments have no notification daemon.
func (n *SystemNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}
