package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/offkai-bot/offkai/internal/offkai"
)

// loadEvents reads events.json and applies the legacy schema migration
// (spec §4.1): an event dict that lacks the event_deadline key is read
// with its channel_id reinterpreted as thread_id, and no deadline.
// Malformed individual entries are skipped with a logged warning;
// malformed JSON for the whole file logs an error and returns an empty
// slice without touching the file on disk.
func loadEvents(raw []byte) []*offkai.Event {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		slog.Error("store: malformed events file, starting with an empty cache", "error", err)
		return nil
	}

	events := make([]*offkai.Event, 0, len(rows))
	for i, row := range rows {
		var d eventDoc
		merged, err := json.Marshal(row)
		if err != nil {
			slog.Warn("store: skipping unreadable event entry", "index", i, "error", err)
			continue
		}
		if err := json.Unmarshal(merged, &d); err != nil {
			slog.Warn("store: skipping malformed event entry", "index", i, "error", err)
			continue
		}
		_, hasDeadlineKey := row["event_deadline"]
		e, err := docToEvent(d, hasDeadlineKey)
		if err != nil {
			slog.Warn("store: skipping event entry with invalid timestamps", "event", d.EventName, "error", err)
			continue
		}
		events = append(events, e)
	}
	return events
}

// loadResponses reads responses.json and migrates the legacy shape
// (spec §4.1): if any top-level value is a list, wrap it as
// {"attendees": list, "waitlist": []}, optionally merging a sibling
// waitlist.json's entries into the respective waitlist arrays.
// Returns the migrated buckets and whether a migration actually ran
// (so the caller knows to save once and not re-migrate).
func loadResponses(raw []byte, legacyWaitlist []byte) (map[string]offkai.EventBucket, bool) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		slog.Error("store: malformed responses file, starting with an empty cache", "error", err)
		return map[string]offkai.EventBucket{}, false
	}

	migrated := false
	legacyWL := map[string][]registrationDoc{}
	if len(legacyWaitlist) > 0 {
		if err := json.Unmarshal(legacyWaitlist, &legacyWL); err != nil {
			slog.Warn("store: malformed legacy waitlist file, ignoring it", "error", err)
			legacyWL = map[string][]registrationDoc{}
		}
	}

	buckets := make(map[string]offkai.EventBucket, len(generic))
	for name, rawVal := range generic {
		var asList []registrationDoc
		if err := json.Unmarshal(rawVal, &asList); err == nil {
			migrated = true
			bucket := bucketDoc{Attendees: asList, Waitlist: legacyWL[name]}
			buckets[foldKey(name)] = decodeBucket(name, bucket)
			continue
		}

		var asBucket bucketDoc
		if err := json.Unmarshal(rawVal, &asBucket); err != nil {
			slog.Warn("store: skipping malformed response bucket", "event", name, "error", err)
			continue
		}
		buckets[foldKey(name)] = decodeBucket(name, asBucket)
	}
	return buckets, migrated
}

func decodeBucket(eventName string, b bucketDoc) offkai.EventBucket {
	out := offkai.EventBucket{}
	for i, rd := range b.Attendees {
		r, err := docToReg(rd)
		if err != nil {
			slog.Warn("store: skipping malformed attendee entry", "event", eventName, "index", i, "error", err)
			continue
		}
		out.Confirmed = append(out.Confirmed, r)
	}
	for i, rd := range b.Waitlist {
		r, err := docToReg(rd)
		if err != nil {
			slog.Warn("store: skipping malformed waitlist entry", "event", eventName, "index", i, "error", err)
			continue
		}
		out.Waitlist = append(out.Waitlist, r)
	}
	return out
}

// encodeEvents renders the current-format events.json document.
func encodeEvents(events []*offkai.Event) ([]byte, error) {
	docs := make([]eventDoc, 0, len(events))
	for _, e := range events {
		docs = append(docs, eventToDoc(e))
	}
	data, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("store: encode events: %w", err)
	}
	return data, nil
}

// encodeResponses renders the current-format responses.json document,
// keyed by each event's canonical (non-folded) name.
func encodeResponses(names map[string]string, buckets map[string]offkai.EventBucket) ([]byte, error) {
	out := make(map[string]bucketDoc, len(buckets))
	for fold, bucket := range buckets {
		name := names[fold]
		if name == "" {
			name = fold
		}
		bd := bucketDoc{}
		for _, r := range bucket.Confirmed {
			bd.Attendees = append(bd.Attendees, regToDoc(name, r))
		}
		for _, r := range bucket.Waitlist {
			bd.Waitlist = append(bd.Waitlist, regToDoc(name, r))
		}
		out[name] = bd
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("store: encode responses: %w", err)
	}
	return data, nil
}
