package offkai

import "time"

// Decision is the outcome of an admission attempt (spec §4.4).
type Decision int

const (
	// DecisionConfirm admits the registration directly into the
	// confirmed list.
	DecisionConfirm Decision = iota
	// DecisionWaitlist places the registration on the waitlist.
	DecisionWaitlist
	// DecisionWaitlistGroupTooLarge is DecisionWaitlist with the
	// "group too large" notice (remaining > 0 but partySize > remaining).
	DecisionWaitlistGroupTooLarge
)

// Remaining computes the remaining confirmed capacity of an event:
// unlimited (-1) if MaxCapacity is unset, else max(0, cap-headCount).
func Remaining(e *Event, headCount int) int {
	if e.MaxCapacity == nil {
		return -1
	}
	r := *e.MaxCapacity - headCount
	if r < 0 {
		return 0
	}
	return r
}

// blocked reports whether new confirmed registrations are currently
// disallowed for the event (spec §4.4).
func blocked(e *Event, now time.Time) bool {
	return e.Archived || !e.Open || e.IsPastDeadline(now)
}

// Admit decides whether a prospective registration of the given party
// size should be confirmed or waitlisted (spec §4.4). It never
// rejects outright: the external surface hides the form for events
// that shouldn't accept new registrations, but the engine still
// accepts waitlist joins for closed/past-deadline events.
func Admit(e *Event, headCount, partySize int, now time.Time) Decision {
	if blocked(e, now) {
		return DecisionWaitlist
	}
	remaining := Remaining(e, headCount)
	if remaining == 0 {
		return DecisionWaitlist
	}
	if remaining > 0 && partySize > remaining {
		return DecisionWaitlistGroupTooLarge
	}
	return DecisionConfirm
}

// ReachesCapacity reports whether confirming partySize on top of
// headCount brings the event to exactly its max capacity — the
// trigger for the one-shot "capacity reached" notification (spec
// §4.4), which fires only on the exact equality transition from below.
func ReachesCapacity(e *Event, headCountBefore, partySize int) bool {
	if e.MaxCapacity == nil {
		return false
	}
	before := headCountBefore
	after := headCountBefore + partySize
	return before < *e.MaxCapacity && after == *e.MaxCapacity
}
