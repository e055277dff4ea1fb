package offkai

import (
	"errors"
	"testing"
	"time"
)

func mustCap(n int) *int { return &n }

func newTestEvent(name string, cap *int) *Event {
	return &Event{
		Name:        name,
		StartTime:   time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
		Open:        true,
		MaxCapacity: cap,
	}
}

func TestEventStoreAddAndGetCaseInsensitive(t *testing.T) {
	s := NewEventStore()
	if _, err := s.Add(newTestEvent("Summer Offkai", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.Get("SUMMER OFFKAI")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Summer Offkai" {
		t.Errorf("expected canonical name preserved, got %q", got.Name)
	}
}

func TestEventStoreAddDuplicateRejected(t *testing.T) {
	s := NewEventStore()
	if _, err := s.Add(newTestEvent("Summer Offkai", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := s.Add(newTestEvent("summer offkai", nil))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

type fakeCounter struct {
	head      int
	waitlisted int
}

func (f fakeCounter) HeadCount(string) int    { return f.head }
func (f fakeCounter) WaitlistLen(string) int { return f.waitlisted }

func TestEventStoreUpdateNoChangesRejected(t *testing.T) {
	s := NewEventStore()
	s.Add(newTestEvent("E", nil))
	venue := ""
	_, err := s.Update("E", EventPatch{Venue: &venue}, fakeCounter{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
}

func TestEventStoreUpdateDeadlineAfterEventRejected(t *testing.T) {
	s := NewEventStore()
	s.Add(newTestEvent("E", nil))
	late := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC) // after start_time
	ptr := &late
	_, err := s.Update("E", EventPatch{Deadline: &ptr}, fakeCounter{})
	if !errors.Is(err, ErrDeadlineAfterEvent) {
		t.Fatalf("expected ErrDeadlineAfterEvent, got %v", err)
	}
}

func TestEventStoreCapacityReductionRules(t *testing.T) {
	s := NewEventStore()
	s.Add(newTestEvent("E", mustCap(50)))

	// reject: new cap below current head-count
	newCap20 := mustCap(20)
	ptr20 := &newCap20
	_, err := s.Update("E", EventPatch{MaxCapacity: ptr20}, fakeCounter{head: 30})
	if !errors.Is(err, ErrCapacityBelowCurrent) {
		t.Fatalf("expected ErrCapacityBelowCurrent, got %v", err)
	}

	// reject: waitlist non-empty even though head-count fits
	newCap40 := mustCap(40)
	ptr40 := &newCap40
	_, err = s.Update("E", EventPatch{MaxCapacity: ptr40}, fakeCounter{head: 30, waitlisted: 3})
	if !errors.Is(err, ErrCapacityWithWaitlist) {
		t.Fatalf("expected ErrCapacityWithWaitlist, got %v", err)
	}
}

func TestEventStoreSetOpenStatusRecordsClosedAttendance(t *testing.T) {
	s := NewEventStore()
	s.Add(newTestEvent("E", mustCap(50)))

	e, err := s.SetOpenStatus("E", false, fakeCounter{head: 30})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if e.ClosedAttendanceCount == nil || *e.ClosedAttendanceCount != 30 {
		t.Fatalf("expected closed_attendance_count=30, got %v", e.ClosedAttendanceCount)
	}

	_, err = s.SetOpenStatus("E", false, fakeCounter{})
	if !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}

	e, err = s.SetOpenStatus("E", true, fakeCounter{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if e.ClosedAttendanceCount != nil {
		t.Fatalf("expected closed_attendance_count cleared on reopen")
	}
}

func TestEventStoreArchiveIsTerminal(t *testing.T) {
	s := NewEventStore()
	s.Add(newTestEvent("E", nil))
	e, err := s.Archive("E")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !e.Archived || e.Open {
		t.Fatalf("expected archived=true, open=false, got %+v", e)
	}
	_, err = s.Archive("E")
	if !errors.Is(err, ErrAlreadyArchived) {
		t.Fatalf("expected ErrAlreadyArchived, got %v", err)
	}
	venue := "New Venue"
	_, err = s.Update("E", EventPatch{Venue: &venue}, fakeCounter{})
	if !errors.Is(err, ErrArchived) {
		t.Fatalf("expected ErrArchived on update of archived event, got %v", err)
	}
}

func TestEventStoreSuggestPrefix(t *testing.T) {
	s := NewEventStore()
	s.Add(newTestEvent("Summer Offkai", nil))
	s.Add(newTestEvent("Winter Offkai", nil))
	s.Archive("Winter Offkai")

	got := s.Suggest("sum", false)
	if len(got) != 1 || got[0] != "Summer Offkai" {
		t.Fatalf("expected [Summer Offkai], got %v", got)
	}

	got = s.Suggest("win", false)
	if len(got) != 0 {
		t.Fatalf("expected archived event excluded, got %v", got)
	}
	got = s.Suggest("win", true)
	if len(got) != 1 {
		t.Fatalf("expected archived event included, got %v", got)
	}
}
