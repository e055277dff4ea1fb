// Package audit is a derived, read-only diagnostics trail: an
// append-only sqlite log of every side effect the orchestrator
// dispatches, so an operator can answer "why did user X end up on the
// waitlist" after the fact. It plays the same role
// internal/timeline.TimelineService plays for the teacher's agent
// loop — opened once per process, schema applied on open, never
// treated as a source of truth (spec_full §8.2; the JSON stores under
// internal/store remain authoritative).
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/offkai-bot/offkai/internal/bus"
)

// Log is a sqlite-backed sink for orchestrator notifications.
type Log struct {
	db *sql.DB
}

// Open creates (or reuses) the sqlite file at path and applies schema.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Subscribe registers l as a listener on b, recording one row per
// dispatched action. Meant to be wired once at startup:
// l.Subscribe(o.Notifications()).
func (l *Log) Subscribe(b *bus.Bus) {
	b.Subscribe(func(n bus.Notification) {
		if err := l.record(n); err != nil {
			slog.Error("audit: record notification failed", "trace_id", n.TraceID, "event", n.EventName, "err", err)
		}
	})
}

func (l *Log) record(n bus.Notification) error {
	_, err := l.db.ExecContext(context.Background(),
		`INSERT INTO audit_log (trace_id, event_name, action, detail) VALUES (?, ?, ?, ?)`,
		n.TraceID, n.EventName, actionLabel(n.Kind), n.Text,
	)
	return err
}

// actionLabel renders an orchestrator.ActionKind value without
// importing internal/orchestrator, which would create an import
// cycle (orchestrator is the package that owns Notifications()).
func actionLabel(kind int) string {
	labels := []string{
		"send_message",
		"pin_message",
		"edit_message",
		"dm_user",
		"assign_role",
		"remove_role",
		"delete_role",
	}
	if kind < 0 || kind >= len(labels) {
		return "unknown"
	}
	return labels[kind]
}

// Entry is one recorded row, returned by RecentByEvent for operator
// inspection (e.g. a future `offkaibot audit <event>` subcommand).
type Entry struct {
	TraceID    string
	EventName  string
	Action     string
	Detail     string
	OccurredAt string
}

// RecentByEvent returns the most recent limit rows for eventName,
// newest first.
func (l *Log) RecentByEvent(ctx context.Context, eventName string, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT trace_id, event_name, action, detail, occurred_at FROM audit_log
		 WHERE event_name = ? ORDER BY id DESC LIMIT ?`,
		eventName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query %s: %w", eventName, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TraceID, &e.EventName, &e.Action, &e.Detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("audit: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
