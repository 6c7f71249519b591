package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
	"github.com/ternarybob/logbook/internal/services/events"
)

func TestNextOccurrence(t *testing.T) {
	base := time.Date(2026, time.March, 10, 16, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before fire time rounds to same day",
			now:  base,
			want: time.Date(2026, time.March, 10, 17, 0, 0, 0, time.Local),
		},
		{
			name: "after fire time rounds to next day",
			now:  time.Date(2026, time.March, 10, 18, 0, 0, 0, time.Local),
			want: time.Date(2026, time.March, 11, 17, 0, 0, 0, time.Local),
		},
		{
			name: "exactly at fire time rounds to next day",
			now:  time.Date(2026, time.March, 10, 17, 0, 0, 0, time.Local),
			want: time.Date(2026, time.March, 11, 17, 0, 0, 0, time.Local),
		},
		{
			name: "one second past fire time rounds to next day",
			now:  time.Date(2026, time.March, 10, 17, 0, 1, 0, time.Local),
			want: time.Date(2026, time.March, 11, 17, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.now, 17, 0)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			assert.True(t, got.After(tt.now), "next occurrence must be strictly in the future")
		})
	}
}

func TestNextOccurrenceNeverMoreThanADayOut(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 59, 59, 0, time.Local)
	next := NextOccurrence(now, 0, 0)
	assert.True(t, next.Sub(now) <= 24*time.Hour)
	assert.True(t, next.After(now))
}

func newTestReminder() (*Service, interfaces.EventService) {
	eventService := events.NewService(arbor.NewLogger())
	return NewService(eventService, arbor.NewLogger()), eventService
}

func TestStartValidatesFireTime(t *testing.T) {
	svc, _ := newTestReminder()

	assert.Error(t, svc.Start(-1, 0))
	assert.Error(t, svc.Start(24, 0))
	assert.Error(t, svc.Start(17, -1))
	assert.Error(t, svc.Start(17, 60))
	assert.False(t, svc.IsRunning())
}

func TestStartArmsExactlyOnce(t *testing.T) {
	svc, _ := newTestReminder()
	defer svc.Stop()

	require.NoError(t, svc.Start(17, 0))
	assert.True(t, svc.IsRunning())

	// Second start is a no-op, not an error.
	require.NoError(t, svc.Start(9, 30))

	status := svc.Status()
	assert.Equal(t, interfaces.ReminderArmed, status.State)
	assert.Equal(t, 17, status.FireHour)
	assert.Equal(t, 0, status.FireMinute)
	require.NotNil(t, status.NextFireAt)
	assert.True(t, status.NextFireAt.After(time.Now()))
}

func TestStopReturnsToIdle(t *testing.T) {
	svc, _ := newTestReminder()

	require.NoError(t, svc.Start(17, 0))
	svc.Stop()

	assert.False(t, svc.IsRunning())
	status := svc.Status()
	assert.Equal(t, interfaces.ReminderIdle, status.State)
	assert.Nil(t, status.NextFireAt)

	// Stop again is harmless.
	svc.Stop()
}

func TestFireDeliversEventAndRearms(t *testing.T) {
	svc, eventService := newTestReminder()
	defer svc.Stop()

	var received interfaces.Event
	require.NoError(t, eventService.Subscribe(interfaces.EventReminderDue, func(ctx context.Context, e interfaces.Event) error {
		received = e
		return nil
	}))

	require.NoError(t, svc.Start(17, 0))
	svc.fire()

	payload, ok := received.Payload.(map[string]string)
	require.True(t, ok)
	assert.NotEmpty(t, payload["fired_at"])
	assert.NotEmpty(t, payload["message"])

	status := svc.Status()
	assert.Equal(t, interfaces.ReminderArmed, status.State, "fire returns the scheduler to armed")
	require.NotNil(t, status.LastFiredAt)
	assert.WithinDuration(t, time.Now(), *status.LastFiredAt, 5*time.Second)
}
