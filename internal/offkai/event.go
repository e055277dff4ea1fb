package offkai

import (
	"strings"
	"time"
)

// JST is the display timezone used for naive timestamps on read and for
// the alert scheduler's minute key (spec §4.1, §4.6).
var JST = time.FixedZone("JST", 9*60*60)

// Event is the unit of the calendar (spec §3.1).
type Event struct {
	Name        string
	Venue       string
	Address     string
	MapsLink    string
	StartTime   time.Time
	Deadline    *time.Time
	ChannelID   *int64
	ThreadID    *int64
	MessageID   *int64
	Open        bool
	Archived    bool
	Drinks      []string
	MaxCapacity *int
	CreatorID   *int64

	// ClosedAttendanceCount is set iff the event was closed via the
	// normal close path (I6); cleared on reopen.
	ClosedAttendanceCount *int

	PingRoleID *int64
	RoleID     *int64
}

// foldName returns the case-folded comparison key for an event name (I1).
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsPastDeadline reports whether now is strictly after the deadline.
func (e *Event) IsPastDeadline(now time.Time) bool {
	return e.Deadline != nil && now.After(*e.Deadline)
}

// HasDrinks reports whether the event has a non-empty drinks menu.
func (e *Event) HasDrinks() bool {
	return len(e.Drinks) > 0
}

// Clone returns a deep copy, so callers holding a returned *Event can't
// mutate store state behind the store's back.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Deadline != nil {
		d := *e.Deadline
		cp.Deadline = &d
	}
	if e.ChannelID != nil {
		v := *e.ChannelID
		cp.ChannelID = &v
	}
	if e.ThreadID != nil {
		v := *e.ThreadID
		cp.ThreadID = &v
	}
	if e.MessageID != nil {
		v := *e.MessageID
		cp.MessageID = &v
	}
	if e.MaxCapacity != nil {
		v := *e.MaxCapacity
		cp.MaxCapacity = &v
	}
	if e.ClosedAttendanceCount != nil {
		v := *e.ClosedAttendanceCount
		cp.ClosedAttendanceCount = &v
	}
	if e.CreatorID != nil {
		v := *e.CreatorID
		cp.CreatorID = &v
	}
	if e.PingRoleID != nil {
		v := *e.PingRoleID
		cp.PingRoleID = &v
	}
	if e.RoleID != nil {
		v := *e.RoleID
		cp.RoleID = &v
	}
	if e.Drinks != nil {
		cp.Drinks = append([]string(nil), e.Drinks...)
	}
	return &cp
}

// drinkSet builds a case-sensitive membership set, used to compare
// drink menus as sets for no-op modification detection (spec §9).
func drinkSet(drinks []string) map[string]struct{} {
	set := make(map[string]struct{}, len(drinks))
	for _, d := range drinks {
		set[d] = struct{}{}
	}
	return set
}

func sameDrinkSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := drinkSet(a), drinkSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for d := range sa {
		if _, ok := sb[d]; !ok {
			return false
		}
	}
	return true
}
