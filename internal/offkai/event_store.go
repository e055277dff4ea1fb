package offkai

import (
	"strings"
	"time"
)

// EventStore owns the set of events and their mutable attributes; it
// enforces lifecycle transitions and modification rules (spec §4.2,
// component C2). It holds no lock of its own — spec §5 puts all of
// C2/C3 under the single coordinator lock in internal/store.
type EventStore struct {
	byFold map[string]*Event // case-folded name -> event
	order  []string          // insertion order of fold-keys, for stable listing
}

// NewEventStore returns an empty store.
func NewEventStore() *EventStore {
	return &EventStore{byFold: make(map[string]*Event)}
}

// Get performs a case-insensitive lookup.
func (s *EventStore) Get(name string) (*Event, error) {
	e, ok := s.byFold[foldName(name)]
	if !ok {
		return nil, newEventErr(name, ErrNotFound)
	}
	return e, nil
}

// All returns every event in insertion order (read-only view; callers
// must not mutate the returned events directly).
func (s *EventStore) All() []*Event {
	out := make([]*Event, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byFold[k])
	}
	return out
}

// Suggest lists event names whose folded key has the given prefix,
// optionally excluding archived events — the pure predicate behind
// chat-platform autocomplete (spec_full §8.3), which is core-state
// logic even though autocomplete rendering itself is out of scope.
func (s *EventStore) Suggest(prefix string, includeArchived bool) []string {
	p := foldName(prefix)
	out := make([]string, 0)
	for _, k := range s.order {
		e := s.byFold[k]
		if !includeArchived && e.Archived {
			continue
		}
		if strings.HasPrefix(k, p) {
			out = append(out, e.Name)
		}
	}
	return out
}

// Add appends a new event to the store and returns it. It does not
// persist on its own (spec §4.2). Fails with ErrDuplicate if an event
// with the same case-folded name already exists.
func (s *EventStore) Add(e *Event) (*Event, error) {
	key := foldName(e.Name)
	if _, exists := s.byFold[key]; exists {
		return nil, newEventErr(e.Name, ErrDuplicate)
	}
	cp := e.Clone()
	s.byFold[key] = cp
	s.order = append(s.order, key)
	return cp, nil
}

// EventPatch carries the mutable-field subset for Update (spec §4.2).
// A nil field means "leave unchanged".
type EventPatch struct {
	Venue       *string
	Address     *string
	MapsLink    *string
	StartTime   *time.Time
	Deadline    **time.Time // pointer-to-pointer so "clear the deadline" is expressible
	Drinks      *[]string
	MaxCapacity **int
}

// HeadCounter supplies the current head-count of an event, used by
// capacity-reduction validation (spec §4.2) and by close/reopen. It is
// satisfied by *RegistrationStore.
type HeadCounter interface {
	HeadCount(eventName string) int
	WaitlistLen(eventName string) int
}

// Update applies any subset of mutable fields. All validation completes
// before any field is mutated (spec §4.2).
func (s *EventStore) Update(name string, patch EventPatch, hc HeadCounter) (*Event, error) {
	e, ok := s.byFold[foldName(name)]
	if !ok {
		return nil, newEventErr(name, ErrNotFound)
	}
	if e.Archived {
		return nil, newEventErr(name, ErrArchived)
	}

	next := e.Clone()
	changed := false

	if patch.Venue != nil && *patch.Venue != next.Venue {
		next.Venue = *patch.Venue
		changed = true
	}
	if patch.Address != nil && *patch.Address != next.Address {
		next.Address = *patch.Address
		changed = true
	}
	if patch.MapsLink != nil && *patch.MapsLink != next.MapsLink {
		next.MapsLink = *patch.MapsLink
		changed = true
	}
	if patch.StartTime != nil && !patch.StartTime.Equal(next.StartTime) {
		next.StartTime = *patch.StartTime
		changed = true
	}
	if patch.Deadline != nil {
		newDeadline := *patch.Deadline
		if !sameDeadline(next.Deadline, newDeadline) {
			next.Deadline = newDeadline
			changed = true
		}
	}
	if patch.Drinks != nil && !sameDrinkSet(next.Drinks, *patch.Drinks) {
		next.Drinks = append([]string(nil), (*patch.Drinks)...)
		changed = true
	}

	capacityLowered := false
	if patch.MaxCapacity != nil {
		newCap := *patch.MaxCapacity
		if !sameIntPtr(next.MaxCapacity, newCap) {
			if next.MaxCapacity != nil && newCap != nil && *newCap < *next.MaxCapacity {
				capacityLowered = true
			}
			next.MaxCapacity = newCap
			changed = true
		}
	}

	if !changed {
		return nil, newEventErr(name, ErrNoChanges)
	}

	// I5: deadline strictly before start_time.
	if next.Deadline != nil && !next.Deadline.Before(next.StartTime) {
		return nil, newEventErr(name, ErrDeadlineAfterEvent)
	}

	if capacityLowered {
		head := 0
		waitlisted := 0
		if hc != nil {
			head = hc.HeadCount(name)
			waitlisted = hc.WaitlistLen(name)
		}
		if *next.MaxCapacity < head {
			return nil, newEventErr(name, ErrCapacityBelowCurrent)
		}
		if waitlisted > 0 {
			return nil, newEventErr(name, ErrCapacityWithWaitlist)
		}
	}

	s.byFold[foldName(name)] = next
	return next.Clone(), nil
}

func sameDeadline(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// SetOpenStatus transitions open<->closed (spec §3.3, §4.2). On close it
// records ClosedAttendanceCount = current head-count (I6); on reopen it
// clears it.
func (s *EventStore) SetOpenStatus(name string, open bool, hc HeadCounter) (*Event, error) {
	e, ok := s.byFold[foldName(name)]
	if !ok {
		return nil, newEventErr(name, ErrNotFound)
	}
	if e.Archived {
		return nil, newEventErr(name, ErrArchived)
	}
	if open && e.Open {
		return nil, newEventErr(name, ErrAlreadyOpen)
	}
	if !open && !e.Open {
		return nil, newEventErr(name, ErrAlreadyClosed)
	}

	next := e.Clone()
	next.Open = open
	if !open {
		count := 0
		if hc != nil {
			count = hc.HeadCount(name)
		}
		next.ClosedAttendanceCount = &count
	} else {
		next.ClosedAttendanceCount = nil
	}
	s.byFold[foldName(name)] = next
	return next.Clone(), nil
}

// Archive transitions any non-archived event to archived (I4: forces
// open=false). Terminal: always fails with ErrAlreadyArchived afterward.
func (s *EventStore) Archive(name string) (*Event, error) {
	e, ok := s.byFold[foldName(name)]
	if !ok {
		return nil, newEventErr(name, ErrNotFound)
	}
	if e.Archived {
		return nil, newEventErr(name, ErrAlreadyArchived)
	}
	next := e.Clone()
	next.Archived = true
	next.Open = false
	s.byFold[foldName(name)] = next
	return next.Clone(), nil
}

// LoadReplace swaps the in-memory entry for name with the given event,
// bypassing all lifecycle validation. Used only by the persistence
// layer (internal/store) when hydrating the store from disk.
func (s *EventStore) LoadReplace(e *Event) {
	key := foldName(e.Name)
	if _, exists := s.byFold[key]; !exists {
		s.order = append(s.order, key)
	}
	s.byFold[key] = e.Clone()
}
