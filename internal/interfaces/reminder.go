package interfaces

import "time"

// ReminderState is the scheduler lifecycle state.
type ReminderState string

const (
	ReminderIdle  ReminderState = "idle"
	ReminderArmed ReminderState = "armed"
	ReminderFired ReminderState = "fired"
)

// ReminderStatus reports the scheduler's current state and timing.
type ReminderStatus struct {
	State       ReminderState `json:"state"`
	FireHour    int           `json:"fire_hour"`
	FireMinute  int           `json:"fire_minute"`
	NextFireAt  *time.Time    `json:"next_fire_at,omitempty"`
	LastFiredAt *time.Time    `json:"last_fired_at,omitempty"`
}

// ReminderService runs the unattended daily reminder. Once started it
// cycles armed -> fired -> armed forever, independent of session or
// network state, until explicitly stopped.
type ReminderService interface {
	// Start arms the reminder for the next occurrence of the given
	// local wall-clock time. Calling Start while already armed is a
	// no-op; at most one timer is ever active.
	Start(fireHour, fireMinute int) error

	// Stop cancels the pending wait and returns the scheduler to idle.
	Stop()

	// IsRunning returns true while the scheduler is armed.
	IsRunning() bool

	// Status reports the current state and next fire time.
	Status() *ReminderStatus
}
