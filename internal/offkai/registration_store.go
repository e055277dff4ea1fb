package offkai

import "strings"

// RegistrationStore owns the per-event confirmed list and waitlist and
// enforces the one-bucket-per-user invariant (I2), component C3.
type RegistrationStore struct {
	buckets map[string]*EventBucket // keyed by case-folded event name
}

// NewRegistrationStore returns an empty store.
func NewRegistrationStore() *RegistrationStore {
	return &RegistrationStore{buckets: make(map[string]*EventBucket)}
}

func (s *RegistrationStore) bucket(event string) *EventBucket {
	key := strings.ToLower(strings.TrimSpace(event))
	b, ok := s.buckets[key]
	if !ok {
		b = &EventBucket{}
		s.buckets[key] = b
	}
	return b
}

// HeadCount implements HeadCounter.
func (s *RegistrationStore) HeadCount(event string) int {
	return s.bucket(event).HeadCount()
}

// WaitlistLen implements HeadCounter.
func (s *RegistrationStore) WaitlistLen(event string) int {
	return len(s.bucket(event).Waitlist)
}

func inEitherBucket(b *EventBucket, userID int64) bool {
	return findIndex(b.Confirmed, userID) >= 0 || findIndex(b.Waitlist, userID) >= 0
}

// AddConfirmed appends to the confirmed list. Fails ErrDuplicate if the
// user is already in either bucket of the event (I2).
func (s *RegistrationStore) AddConfirmed(event string, reg *Registration) error {
	b := s.bucket(event)
	if inEitherBucket(b, reg.UserID) {
		return newRegErr(event, reg.UserID, ErrDuplicate)
	}
	b.Confirmed = append(b.Confirmed, reg.Clone())
	return nil
}

// AddWaitlist appends to the waitlist (FIFO order = append order).
// Fails ErrDuplicate if the user is already in either bucket (I2).
func (s *RegistrationStore) AddWaitlist(event string, entry *WaitlistEntry) error {
	b := s.bucket(event)
	if inEitherBucket(b, entry.UserID) {
		return newRegErr(event, entry.UserID, ErrDuplicate)
	}
	b.Waitlist = append(b.Waitlist, entry.Clone())
	return nil
}

// RemoveConfirmed removes and returns a user's confirmed registration.
// Fails ErrNotFound if the user is not in the confirmed list.
func (s *RegistrationStore) RemoveConfirmed(event string, userID int64) (*Registration, error) {
	b := s.bucket(event)
	i := findIndex(b.Confirmed, userID)
	if i < 0 {
		return nil, newRegErr(event, userID, ErrNotFound)
	}
	reg := b.Confirmed[i]
	b.Confirmed = append(b.Confirmed[:i], b.Confirmed[i+1:]...)
	return reg, nil
}

// RemoveWaitlist removes and returns a user's waitlist entry. Fails
// ErrNotFound if the user is not in the waitlist.
func (s *RegistrationStore) RemoveWaitlist(event string, userID int64) (*WaitlistEntry, error) {
	b := s.bucket(event)
	i := findIndex(b.Waitlist, userID)
	if i < 0 {
		return nil, newRegErr(event, userID, ErrNotFound)
	}
	entry := b.Waitlist[i]
	b.Waitlist = append(b.Waitlist[:i], b.Waitlist[i+1:]...)
	return entry, nil
}

// PromoteHead pops the head of the waitlist (FIFO) and returns it,
// without inserting it into confirmed — the caller (promotion engine)
// does that (spec §4.3). Returns nil, nil if the waitlist is empty.
func (s *RegistrationStore) PromoteHead(event string) (*WaitlistEntry, error) {
	b := s.bucket(event)
	if len(b.Waitlist) == 0 {
		return nil, nil
	}
	entry := b.Waitlist[0]
	b.Waitlist = b.Waitlist[1:]
	return entry, nil
}

// PromoteSpecific removes a named entry from the waitlist, bypassing
// FIFO order, for manual (organizer-initiated) promotion (spec §4.5).
func (s *RegistrationStore) PromoteSpecific(event string, userID int64) (*WaitlistEntry, error) {
	return s.RemoveWaitlist(event, userID)
}

// GetConfirmed returns a read-only view of the confirmed list.
func (s *RegistrationStore) GetConfirmed(event string) []*Registration {
	return append([]*Registration(nil), s.bucket(event).Confirmed...)
}

// GetWaitlist returns a read-only view of the waitlist.
func (s *RegistrationStore) GetWaitlist(event string) []*WaitlistEntry {
	return append([]*WaitlistEntry(nil), s.bucket(event).Waitlist...)
}

// PushConfirmed inserts an entry directly into the confirmed list,
// preserving its original timestamp and payload — used by the
// promotion engine after PromoteHead/PromoteSpecific pops a waitlist
// entry (spec §4.5's "push head to confirmed").
func (s *RegistrationStore) PushConfirmed(event string, reg *Registration) {
	b := s.bucket(event)
	b.Confirmed = append(b.Confirmed, reg.Clone())
}

// LoadBucket installs a bucket wholesale, bypassing all invariant
// checks. Used only by internal/store when hydrating from disk.
func (s *RegistrationStore) LoadBucket(event string, bucket EventBucket) {
	key := strings.ToLower(strings.TrimSpace(event))
	cp := &EventBucket{
		Confirmed: make([]*Registration, len(bucket.Confirmed)),
		Waitlist:  make([]*WaitlistEntry, len(bucket.Waitlist)),
	}
	for i, r := range bucket.Confirmed {
		cp.Confirmed[i] = r.Clone()
	}
	for i, r := range bucket.Waitlist {
		cp.Waitlist[i] = r.Clone()
	}
	s.buckets[key] = cp
}

// Bucket returns a deep-copied snapshot of an event's bucket, for
// persistence (internal/store) and for ranking/reporting helpers.
func (s *RegistrationStore) Bucket(event string) EventBucket {
	b := s.bucket(event)
	cp := EventBucket{
		Confirmed: make([]*Registration, len(b.Confirmed)),
		Waitlist:  make([]*WaitlistEntry, len(b.Waitlist)),
	}
	for i, r := range b.Confirmed {
		cp.Confirmed[i] = r.Clone()
	}
	for i, r := range b.Waitlist {
		cp.Waitlist[i] = r.Clone()
	}
	return cp
}

// Events returns the case-folded event keys with a known bucket.
func (s *RegistrationStore) Events() []string {
	out := make([]string, 0, len(s.buckets))
	for k := range s.buckets {
		out = append(out, k)
	}
	return out
}
