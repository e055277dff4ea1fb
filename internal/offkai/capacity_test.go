package offkai

import (
	"testing"
	"time"
)

func TestAdmitConfirmWhenRoom(t *testing.T) {
	e := newTestEvent("E", mustCap(4))
	now := e.StartTime.Add(-24 * time.Hour)
	if d := Admit(e, 0, 1, now); d != DecisionConfirm {
		t.Fatalf("expected confirm, got %v", d)
	}
}

func TestAdmitWaitlistWhenFull(t *testing.T) {
	e := newTestEvent("E", mustCap(4))
	now := e.StartTime.Add(-24 * time.Hour)
	if d := Admit(e, 4, 1, now); d != DecisionWaitlist {
		t.Fatalf("expected waitlist, got %v", d)
	}
}

func TestAdmitGroupTooLarge(t *testing.T) {
	e := newTestEvent("E", mustCap(4))
	now := e.StartTime.Add(-24 * time.Hour)
	if d := Admit(e, 3, 2, now); d != DecisionWaitlistGroupTooLarge {
		t.Fatalf("expected waitlist-group-too-large, got %v", d)
	}
}

func TestAdmitBlockedByClosedOrPastDeadline(t *testing.T) {
	e := newTestEvent("E", mustCap(4))
	e.Open = false
	now := e.StartTime.Add(-24 * time.Hour)
	if d := Admit(e, 0, 1, now); d != DecisionWaitlist {
		t.Fatalf("expected waitlist for closed event, got %v", d)
	}

	e2 := newTestEvent("E2", mustCap(4))
	deadline := e2.StartTime.Add(-48 * time.Hour)
	e2.Deadline = &deadline
	now2 := e2.StartTime.Add(-24 * time.Hour) // after deadline, before start
	if d := Admit(e2, 0, 1, now2); d != DecisionWaitlist {
		t.Fatalf("expected waitlist past deadline, got %v", d)
	}
}

func TestAdmitUnlimitedCapacityAlwaysConfirms(t *testing.T) {
	e := newTestEvent("E", nil)
	now := e.StartTime.Add(-24 * time.Hour)
	if d := Admit(e, 1000, 5, now); d != DecisionConfirm {
		t.Fatalf("expected confirm for unlimited capacity, got %v", d)
	}
}

func TestReachesCapacityFiresOnExactTransition(t *testing.T) {
	e := newTestEvent("E", mustCap(4))
	if !ReachesCapacity(e, 2, 2) {
		t.Fatalf("expected true on exact transition to capacity")
	}
	if ReachesCapacity(e, 2, 1) {
		t.Fatalf("expected false when not reaching capacity")
	}
	if ReachesCapacity(e, 4, 1) {
		t.Fatalf("expected false: already at/over capacity before, not a from-below transition")
	}
}
