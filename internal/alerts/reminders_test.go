package alerts

import (
	"testing"
	"time"

	"github.com/offkai-bot/offkai/internal/clock"
	"github.com/offkai-bot/offkai/internal/offkai"
)

type recordingSink struct {
	closed   []string
	messages []string
}

func (r *recordingSink) AutoClose(eventName, message string) error {
	r.closed = append(r.closed, eventName+":"+message)
	return nil
}

func (r *recordingSink) SendMessage(channelID int64, text string) error {
	r.messages = append(r.messages, text)
	return nil
}

func TestRegisterRemindersSkipsPastOffsets(t *testing.T) {
	now := time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)
	c := clock.NewManual(now)
	s := New(c, 0)

	deadline := now.Add(12 * time.Hour) // only the 0 offset lands in the future; -1d is already 12h before now
	channel := int64(555)
	event := &offkai.Event{Name: "Summer Meetup", ChannelID: &channel, Deadline: &deadline}

	sink := &recordingSink{}
	skipped := RegisterReminders(s, event, sink)

	if skipped != 3 {
		t.Fatalf("expected 3 offsets (-1d,-3d,-7d) to be in the past, got %d", skipped)
	}
	if s.Pending() != 1 {
		t.Fatalf("expected only the auto-close task registered, got pending=%d", s.Pending())
	}

	s.Tick(deadline)
	if len(sink.closed) != 1 || sink.closed[0] != "Summer Meetup:deadline reached" {
		t.Fatalf("expected auto-close to fire, got %v", sink.closed)
	}
}

func TestRegisterRemindersAllFutureOffsetsFire(t *testing.T) {
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewManual(now)
	s := New(c, 0)

	deadline := now.Add(10 * 24 * time.Hour)
	channel := int64(555)
	event := &offkai.Event{Name: "Winter Meetup", ChannelID: &channel, Deadline: &deadline}

	sink := &recordingSink{}
	skipped := RegisterReminders(s, event, sink)
	if skipped != 0 {
		t.Fatalf("expected no offsets skipped, got %d", skipped)
	}
	if s.Pending() != 4 {
		t.Fatalf("expected 4 tasks registered, got %d", s.Pending())
	}

	s.Tick(deadline.Add(-7 * 24 * time.Hour))
	s.Tick(deadline.Add(-3 * 24 * time.Hour))
	s.Tick(deadline.Add(-24 * time.Hour))
	s.Tick(deadline)

	if len(sink.messages) != 3 {
		t.Fatalf("expected 3 reminder sends, got %d: %v", len(sink.messages), sink.messages)
	}
	if len(sink.closed) != 1 {
		t.Fatalf("expected 1 auto-close, got %d", len(sink.closed))
	}
}

func TestRegisterRemindersNoDeadlineIsNoop(t *testing.T) {
	c := clock.NewManual(time.Now())
	s := New(c, 0)
	event := &offkai.Event{Name: "No Deadline"}
	if skipped := RegisterReminders(s, event, &recordingSink{}); skipped != 0 {
		t.Fatalf("expected 0 skipped for an event with no deadline, got %d", skipped)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected nothing registered, got %d", s.Pending())
	}
}
