// Package store implements the persistence and encoding layer (C1):
// atomic load/save of the two JSON stores, schema migration from the
// legacy on-disk format, and timezone normalization on read/write
// (spec §4.1).
package store

import (
	"strings"
	"time"

	"github.com/offkai-bot/offkai/internal/offkai"
)

// eventDoc mirrors one events.json entry (spec §6.1).
type eventDoc struct {
	EventName             string   `json:"event_name"`
	Venue                 string   `json:"venue"`
	Address               string   `json:"address"`
	GoogleMapsLink        string   `json:"google_maps_link"`
	EventDatetime         string   `json:"event_datetime"`
	EventDeadline         *string  `json:"event_deadline"`
	Message               *string  `json:"message"`
	ChannelID             *int64   `json:"channel_id"`
	ThreadID              *int64   `json:"thread_id"`
	MessageID             *int64   `json:"message_id"`
	Open                  bool     `json:"open"`
	Archived              bool     `json:"archived"`
	Drinks                []string `json:"drinks"`
	MaxCapacity           *int     `json:"max_capacity"`
	CreatorID             *int64   `json:"creator_id"`
	ClosedAttendanceCount *int     `json:"closed_attendance_count"`
	PingRoleID            *int64   `json:"ping_role_id"`
	RoleID                *int64   `json:"role_id"`
}

// registrationDoc mirrors one Registration/WaitlistEntry entry (spec §6.1).
type registrationDoc struct {
	UserID            int64    `json:"user_id"`
	Username          string   `json:"username"`
	DisplayName       *string  `json:"display_name"`
	ExtraPeople       int      `json:"extra_people"`
	ExtrasNames       []string `json:"extras_names"`
	BehaviorConfirmed bool     `json:"behavior_confirmed"`
	ArrivalConfirmed  bool     `json:"arrival_confirmed"`
	EventName         string   `json:"event_name"`
	Timestamp         string   `json:"timestamp"`
	Drinks            []string `json:"drinks"`
}

// bucketDoc mirrors the current responses.json per-event shape.
type bucketDoc struct {
	Attendees []registrationDoc `json:"attendees"`
	Waitlist  []registrationDoc `json:"waitlist"`
}

// parseStoredTime implements the read-side timezone rule (spec §4.1):
// a naive timestamp is interpreted as JST and converted to UTC; an
// aware timestamp is converted to UTC.
func parseStoredTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	// Naive form: no offset in the string.
	const naiveLayout = "2006-01-02T15:04:05"
	t, err := time.ParseInLocation(naiveLayout, s, offkai.JST)
	if err != nil {
		// Fall back to a looser naive form with a space separator.
		t, err = time.ParseInLocation("2006-01-02 15:04:05", s, offkai.JST)
		if err != nil {
			return time.Time{}, err
		}
	}
	return t.UTC(), nil
}

// formatStoredTime implements the write-side rule: always ISO-8601
// with explicit UTC offset.
func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func eventToDoc(e *offkai.Event) eventDoc {
	d := eventDoc{
		EventName:             e.Name,
		Venue:                 e.Venue,
		Address:               e.Address,
		GoogleMapsLink:        e.MapsLink,
		EventDatetime:         formatStoredTime(e.StartTime),
		ChannelID:             e.ChannelID,
		ThreadID:              e.ThreadID,
		MessageID:             e.MessageID,
		Open:                  e.Open,
		Archived:              e.Archived,
		Drinks:                append([]string(nil), e.Drinks...),
		MaxCapacity:           e.MaxCapacity,
		CreatorID:             e.CreatorID,
		ClosedAttendanceCount: e.ClosedAttendanceCount,
		PingRoleID:            e.PingRoleID,
		RoleID:                e.RoleID,
	}
	if e.Deadline != nil {
		s := formatStoredTime(*e.Deadline)
		d.EventDeadline = &s
	}
	return d
}

// docToEvent converts a decoded eventDoc back into an *offkai.Event,
// applying both migration rules from spec §4.1: the legacy
// channel_id-as-thread_id mapping when event_deadline is wholly
// absent, and naive-timestamp JST interpretation (already applied by
// parseStoredTime).
func docToEvent(d eventDoc, hasDeadlineKey bool) (*offkai.Event, error) {
	start, err := parseStoredTime(d.EventDatetime)
	if err != nil {
		return nil, err
	}
	e := &offkai.Event{
		Name:                  d.EventName,
		Venue:                 d.Venue,
		Address:               d.Address,
		MapsLink:              d.GoogleMapsLink,
		StartTime:             start,
		Open:                  d.Open,
		Archived:              d.Archived,
		Drinks:                append([]string(nil), d.Drinks...),
		MaxCapacity:           d.MaxCapacity,
		CreatorID:             d.CreatorID,
		ClosedAttendanceCount: d.ClosedAttendanceCount,
		PingRoleID:            d.PingRoleID,
		RoleID:                d.RoleID,
	}

	if !hasDeadlineKey {
		// Older event schema: what is now thread_id was recorded as
		// channel_id, and no deadline existed at all.
		e.ThreadID = d.ChannelID
		e.ChannelID = nil
		e.Deadline = nil
		return e, nil
	}

	e.ChannelID = d.ChannelID
	e.ThreadID = d.ThreadID
	e.MessageID = d.MessageID
	if d.EventDeadline != nil {
		dl, err := parseStoredTime(*d.EventDeadline)
		if err != nil {
			return nil, err
		}
		e.Deadline = &dl
	}
	return e, nil
}

func regToDoc(eventName string, r *offkai.Registration) registrationDoc {
	var displayName *string
	if r.DisplayName != "" {
		dn := r.DisplayName
		displayName = &dn
	}
	return registrationDoc{
		UserID:            r.UserID,
		Username:          r.Username,
		DisplayName:       displayName,
		ExtraPeople:       r.ExtraPeople,
		ExtrasNames:       append([]string(nil), r.ExtrasNames...),
		BehaviorConfirmed: r.BehaviorConfirmed,
		ArrivalConfirmed:  r.ArrivalConfirmed,
		EventName:         eventName,
		Timestamp:         formatStoredTime(r.Timestamp),
		Drinks:            append([]string(nil), r.Drinks...),
	}
}

func docToReg(d registrationDoc) (*offkai.Registration, error) {
	ts, err := parseStoredTime(d.Timestamp)
	if err != nil {
		return nil, err
	}
	displayName := ""
	if d.DisplayName != nil {
		displayName = *d.DisplayName
	}
	return &offkai.Registration{
		UserID:            d.UserID,
		Username:          d.Username,
		DisplayName:       displayName,
		ExtraPeople:       d.ExtraPeople,
		ExtrasNames:       append([]string(nil), d.ExtrasNames...),
		BehaviorConfirmed: d.BehaviorConfirmed,
		ArrivalConfirmed:  d.ArrivalConfirmed,
		Drinks:            append([]string(nil), d.Drinks...),
		Timestamp:         ts,
	}, nil
}

func foldKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
