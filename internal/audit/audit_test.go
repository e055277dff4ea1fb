package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/offkai-bot/offkai/internal/bus"
)

func TestSubscribeRecordsDispatchedNotifications(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	b := bus.New()
	log.Subscribe(b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	b.Publish(bus.Notification{TraceID: "t1", EventName: "Summer Meetup", Kind: 0, Text: "announcement"})
	b.Publish(bus.Notification{TraceID: "t1", EventName: "Summer Meetup", Kind: 3, Text: "you made it off the waitlist"})

	var entries []Entry
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		entries, err = log.RecentByEvent(context.Background(), "Summer Meetup", 10)
		if err != nil {
			t.Fatalf("RecentByEvent: %v", err)
		}
		if len(entries) == 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 recorded entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Action != "dm_user" || entries[1].Action != "send_message" {
		t.Fatalf("unexpected action labels: %+v", entries)
	}
}

func TestRecentByEventIgnoresOtherEvents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	if err := log.record(bus.Notification{TraceID: "t1", EventName: "A", Kind: 0}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := log.record(bus.Notification{TraceID: "t2", EventName: "B", Kind: 0}); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := log.RecentByEvent(context.Background(), "A", 10)
	if err != nil {
		t.Fatalf("RecentByEvent: %v", err)
	}
	if len(entries) != 1 || entries[0].EventName != "A" {
		t.Fatalf("expected exactly one entry for event A, got %+v", entries)
	}
}
