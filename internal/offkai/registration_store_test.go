package offkai

import (
	"errors"
	"testing"
	"time"
)

func reg(userID int64, extra int) *Registration {
	return &Registration{
		UserID:            userID,
		Username:          "user",
		ExtraPeople:       extra,
		ExtrasNames:       make([]string, extra),
		BehaviorConfirmed: true,
		ArrivalConfirmed:  true,
		Timestamp:         time.Now().UTC(),
	}
}

func TestRegistrationStoreOneBucketInvariant(t *testing.T) {
	s := NewRegistrationStore()
	if err := s.AddConfirmed("E", reg(1, 0)); err != nil {
		t.Fatalf("AddConfirmed: %v", err)
	}
	if err := s.AddConfirmed("E", reg(1, 0)); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same user in confirmed, got %v", err)
	}
	if err := s.AddWaitlist("E", reg(1, 0)); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same user already confirmed, got %v", err)
	}
}

func TestRegistrationStoreRemoveNotFound(t *testing.T) {
	s := NewRegistrationStore()
	if _, err := s.RemoveConfirmed("E", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.RemoveWaitlist("E", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistrationStorePromoteHeadFIFO(t *testing.T) {
	s := NewRegistrationStore()
	s.AddWaitlist("E", reg(1, 0))
	s.AddWaitlist("E", reg(2, 0))

	got, err := s.PromoteHead("E")
	if err != nil || got.UserID != 1 {
		t.Fatalf("expected user 1 promoted first, got %v err %v", got, err)
	}
	got, err = s.PromoteHead("E")
	if err != nil || got.UserID != 2 {
		t.Fatalf("expected user 2 promoted next, got %v err %v", got, err)
	}
	got, err = s.PromoteHead("E")
	if err != nil || got != nil {
		t.Fatalf("expected nil on empty waitlist, got %v err %v", got, err)
	}
}

func TestRegistrationStorePromoteSpecificBypassesFIFO(t *testing.T) {
	s := NewRegistrationStore()
	s.AddWaitlist("E", reg(1, 0))
	s.AddWaitlist("E", reg(2, 0))

	got, err := s.PromoteSpecific("E", 2)
	if err != nil || got.UserID != 2 {
		t.Fatalf("expected user 2, got %v err %v", got, err)
	}
	wl := s.GetWaitlist("E")
	if len(wl) != 1 || wl[0].UserID != 1 {
		t.Fatalf("expected user 1 left on waitlist, got %v", wl)
	}
}

func TestRegistrationValidateExtrasAndDrinks(t *testing.T) {
	r := reg(1, 2)
	r.ExtrasNames = []string{"a", "b"}
	r.Drinks = []string{"beer", "beer", "wine"}
	if err := r.Validate(true); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := r.Validate(false); !errors.Is(err, ErrDrinksMismatch) {
		t.Fatalf("expected ErrDrinksMismatch when event has no drinks, got %v", err)
	}

	r2 := reg(2, 1)
	r2.ExtrasNames = []string{""}
	if err := r2.Validate(false); !errors.Is(err, ErrBlankExtraName) {
		t.Fatalf("expected ErrBlankExtraName, got %v", err)
	}

	r3 := reg(3, 2)
	r3.ExtrasNames = []string{"a"}
	if err := r3.Validate(false); !errors.Is(err, ErrExtrasNamesMismatch) {
		t.Fatalf("expected ErrExtrasNamesMismatch, got %v", err)
	}
}
