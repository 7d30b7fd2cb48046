package db

// schemaSQL is the authoritative run history schema. Tests load it via
// GetSchemaSQL so their schema cannot drift from production.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    command     TEXT NOT NULL,
    outcome     TEXT NOT NULL,
    detail      TEXT NOT NULL DEFAULT '',
    exit_code   INTEGER NOT NULL DEFAULT 0,
    started_at  TEXT NOT NULL,
    finished_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
`

// GetSchemaSQL returns the schema DDL.
func GetSchemaSQL() string {
	return schemaSQL
}
