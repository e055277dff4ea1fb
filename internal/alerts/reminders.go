package alerts

import (
	"fmt"
	"time"

	"github.com/offkai-bot/offkai/internal/offkai"
)

// reminderOffsets lists the deadline offsets the orchestrator registers
// a task for on event creation and on any deadline change (spec §4.6).
// Offset 0 is the auto-close trigger; the rest are reminder pings.
var reminderOffsets = []time.Duration{
	0,
	-24 * time.Hour,
	-72 * time.Hour,
	-7 * 24 * time.Hour,
}

// Sink is what RegisterReminders needs from its caller to build the
// two task variants without depending on the orchestrator package
// (which would create an import cycle: orchestrator already depends
// on alerts).
type Sink interface {
	AutoClose(eventName, message string) error
	SendMessage(channelID int64, text string) error
}

// RegisterReminders registers, for each offset in reminderOffsets, a
// task at event.Deadline+offset against s. Past times are silently
// skipped per offset (ErrTimeInPast is caught and swallowed) so that
// later reminders still register (spec §4.6). It returns how many
// offsets were skipped as already past.
func RegisterReminders(s *Scheduler, event *offkai.Event, sink Sink) (skipped int) {
	if event.Deadline == nil {
		return 0
	}
	for _, offset := range reminderOffsets {
		when := event.Deadline.Add(offset)
		task := reminderTask(event, offset, sink)
		if err := s.Register(when, task); err != nil {
			skipped++
			continue
		}
	}
	return skipped
}

func reminderTask(event *offkai.Event, offset time.Duration, sink Sink) *Task {
	name := event.Name
	if offset == 0 {
		return &Task{
			Label: fmt.Sprintf("auto-close:%s", name),
			Action: func(now time.Time) error {
				return sink.AutoClose(name, "deadline reached")
			},
		}
	}

	text := reminderText(name, offset)
	channelID := int64(0)
	if event.ChannelID != nil {
		channelID = *event.ChannelID
	}
	return &Task{
		Label: fmt.Sprintf("reminder:%s:%s", name, offset),
		Action: func(now time.Time) error {
			if channelID == 0 {
				return nil
			}
			return sink.SendMessage(channelID, text)
		},
	}
}

func reminderText(eventName string, offset time.Duration) string {
	days := int(-offset / (24 * time.Hour))
	switch days {
	case 1:
		return fmt.Sprintf("Reminder: registration for \"%s\" closes in 1 day.", eventName)
	default:
		return fmt.Sprintf("Reminder: registration for \"%s\" closes in %d days.", eventName, days)
	}
}
