package offkai

// PromotionTrigger identifies why the promotion engine is running
// (spec §4.5): a confirmed withdrawal, a capacity increase, or an
// event reopen.
type PromotionTrigger int

const (
	TriggerWithdrawal PromotionTrigger = iota
	TriggerCapacityIncrease
	TriggerReopen
)

// EffectiveTargetCapacity computes the target head-count the promotion
// engine drains the waitlist up to (spec §4.5). unlimited is true when
// there is no cap at all (the event currently has no max_capacity and
// no closed_attendance_count).
func EffectiveTargetCapacity(e *Event) (target int, unlimited bool) {
	if e.ClosedAttendanceCount != nil {
		cac := *e.ClosedAttendanceCount
		if e.MaxCapacity != nil && *e.MaxCapacity < cac {
			return *e.MaxCapacity, false
		}
		return cac, false
	}
	if e.MaxCapacity != nil {
		return *e.MaxCapacity, false
	}
	return 0, true
}

// Promote drains the waitlist into the confirmed list according to the
// head-of-line-only algorithm of spec §4.5, mutating regs in place and
// returning the entries that were promoted (in promotion order) so the
// caller can emit one notification per promoted user.
//
// The legacy "unlimited capacity + withdrawal promotes at most one"
// carve-out (spec §4.5, §9 open question) is preserved: it applies
// only when the event has no cap at all (no max_capacity and no
// closed_attendance_count) and the trigger is a withdrawal. Capacity
// increases and reopens on an uncapped event cascade the full
// waitlist, since spec §4.5 states the carve-out only for the
// withdrawal case.
func Promote(event string, e *Event, regs *RegistrationStore, trigger PromotionTrigger) []*WaitlistEntry {
	target, unlimited := EffectiveTargetCapacity(e)

	limit := -1
	if unlimited && trigger == TriggerWithdrawal {
		limit = 1
	}

	var promoted []*WaitlistEntry
	for {
		if limit == 0 {
			break
		}
		if !unlimited && regs.HeadCount(event) >= target {
			break
		}
		wl := regs.GetWaitlist(event)
		if len(wl) == 0 {
			break
		}
		head := wl[0]
		party := head.PartySize()
		if !unlimited && regs.HeadCount(event)+party > target {
			// Head of line does not fit; halt without skipping it
			// (FIFO fairness, spec §4.5).
			break
		}
		popped, err := regs.PromoteHead(event)
		if err != nil || popped == nil {
			break
		}
		regs.PushConfirmed(event, popped)
		promoted = append(promoted, popped)
		if limit > 0 {
			limit--
		}
	}
	return promoted
}
