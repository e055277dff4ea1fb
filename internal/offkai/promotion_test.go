package offkai

import "testing"

// Scenario 1 (spec §8): waitlist FIFO promotion.
func TestPromoteFIFOAfterWithdrawal(t *testing.T) {
	regs := NewRegistrationStore()
	e := newTestEvent("E", mustCap(4))

	regs.AddConfirmed("E", reg(100, 3)) // party 4 -> head_count 4
	regs.AddWaitlist("E", reg(1, 0))    // B
	regs.AddWaitlist("E", reg(2, 0))    // C
	regs.AddWaitlist("E", reg(3, 1))    // D, party 2

	regs.RemoveConfirmed("E", 100) // A withdraws -> head_count 0

	promoted := Promote("E", e, regs, TriggerWithdrawal)
	if len(promoted) != 3 {
		t.Fatalf("expected all 3 waitlisted users promoted, got %d", len(promoted))
	}
	if regs.HeadCount("E") != 4 {
		t.Fatalf("expected head_count 4, got %d", regs.HeadCount("E"))
	}
	if len(regs.GetWaitlist("E")) != 0 {
		t.Fatalf("expected empty waitlist")
	}
}

// Scenario 2 (spec §8): head-of-line blocking.
func TestPromoteHeadOfLineBlocking(t *testing.T) {
	regs := NewRegistrationStore()
	e := newTestEvent("E", mustCap(4))

	regs.AddConfirmed("E", reg(1, 1)) // A, party 2 -> head_count 2
	regs.AddConfirmed("E", reg(2, 1)) // B, party 2 -> head_count 4
	regs.AddWaitlist("E", reg(3, 0))  // C, party 1
	regs.AddWaitlist("E", reg(4, 1))  // D, party 2

	regs.RemoveConfirmed("E", 1) // A withdraws -> head_count 2

	promoted := Promote("E", e, regs, TriggerWithdrawal)
	if len(promoted) != 1 || promoted[0].UserID != 3 {
		t.Fatalf("expected only C promoted, got %v", promoted)
	}
	if regs.HeadCount("E") != 3 {
		t.Fatalf("expected head_count 3, got %d", regs.HeadCount("E"))
	}
	wl := regs.GetWaitlist("E")
	if len(wl) != 1 || wl[0].UserID != 4 {
		t.Fatalf("expected D still waitlisted, got %v", wl)
	}
}

// Scenario 3 (spec §8): closed attendance cap.
func TestPromoteRespectsClosedAttendanceCount(t *testing.T) {
	regs := NewRegistrationStore()
	e := newTestEvent("E", mustCap(50))
	for i := int64(1); i <= 30; i++ {
		regs.AddConfirmed("E", reg(i, 0))
	}
	cac := 30
	e.ClosedAttendanceCount = &cac
	for i := int64(100); i < 105; i++ {
		regs.AddWaitlist("E", reg(i, 0))
	}

	regs.RemoveConfirmed("E", 1) // one confirmed withdraws -> head_count 29

	promoted := Promote("E", e, regs, TriggerWithdrawal)
	if len(promoted) != 1 {
		t.Fatalf("expected exactly one promotion, got %d", len(promoted))
	}
	if regs.HeadCount("E") != 30 {
		t.Fatalf("expected head_count back to 30, got %d", regs.HeadCount("E"))
	}
	if len(regs.GetWaitlist("E")) != 4 {
		t.Fatalf("expected 4 left on waitlist, got %d", len(regs.GetWaitlist("E")))
	}
}

// Scenario 4 (spec §8): reopen clears the cap and resumes promotion to
// full max_capacity.
func TestPromoteAfterReopenUsesMaxCapacity(t *testing.T) {
	regs := NewRegistrationStore()
	e := newTestEvent("E", mustCap(50))
	for i := int64(1); i <= 30; i++ {
		regs.AddConfirmed("E", reg(i, 0))
	}
	for i := int64(100); i < 104; i++ { // 4 left waitlisted from scenario 3
		regs.AddWaitlist("E", reg(i, 0))
	}
	// closed_attendance_count cleared by reopen
	e.ClosedAttendanceCount = nil

	promoted := Promote("E", e, regs, TriggerReopen)
	if len(promoted) != 4 {
		t.Fatalf("expected all 4 promoted, got %d", len(promoted))
	}
	if regs.HeadCount("E") != 34 {
		t.Fatalf("expected head_count 34, got %d", regs.HeadCount("E"))
	}
}

func TestPromoteUnlimitedCapacityWithdrawalCapsAtOne(t *testing.T) {
	regs := NewRegistrationStore()
	e := newTestEvent("E", nil) // unlimited
	regs.AddConfirmed("E", reg(1, 0))
	regs.AddWaitlist("E", reg(2, 0))
	regs.AddWaitlist("E", reg(3, 0))

	regs.RemoveConfirmed("E", 1)

	promoted := Promote("E", e, regs, TriggerWithdrawal)
	if len(promoted) != 1 {
		t.Fatalf("expected legacy cap of 1 promotion on unlimited event, got %d", len(promoted))
	}
	if len(regs.GetWaitlist("E")) != 1 {
		t.Fatalf("expected one entry left waitlisted, got %d", len(regs.GetWaitlist("E")))
	}
}

