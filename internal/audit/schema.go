package audit

// schema is applied once on open, guarded by CREATE TABLE IF NOT
// EXISTS so repeated opens against the same file are idempotent —
// modeled on internal/timeline/schema.go's single-string-constant
// approach rather than a migration runner, since the audit trail never
// needs a column added after the fact (it is derived, append-only, and
// safe to delete and let repopulate from scratch).
const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	trace_id    TEXT NOT NULL,
	event_name  TEXT NOT NULL,
	action      TEXT NOT NULL,
	detail      TEXT NOT NULL DEFAULT '',
	occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_audit_trace ON audit_log(trace_id);
CREATE INDEX IF NOT EXISTS idx_audit_event ON audit_log(event_name);
`
