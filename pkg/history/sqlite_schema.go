package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history database schema.
// analyzed_at holds Unix nanoseconds so both drivers read it back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    analyzed_at INTEGER NOT NULL,

    -- Participants
    requester TEXT NOT NULL DEFAULT '',
    responder TEXT NOT NULL DEFAULT '',

    -- Status
    requests_count INTEGER NOT NULL,
    status TEXT NOT NULL,
    status_text TEXT NOT NULL,
    has_result INTEGER NOT NULL,
    has_followups INTEGER NOT NULL,
    is_canceled INTEGER NOT NULL,
    last_request_id TEXT NOT NULL DEFAULT ''
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_analyzed_at ON reports(analyzed_at);
CREATE INDEX IF NOT EXISTS idx_reports_source ON reports(source, analyzed_at);
CREATE INDEX IF NOT EXISTS idx_reports_status ON reports(status);
CREATE INDEX IF NOT EXISTS idx_reports_requester ON reports(requester);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const reportColumns = `id, source, analyzed_at, requester, responder, requests_count,
	status, status_text, has_result, has_followups, is_canceled, last_request_id`
