// journal/schema.go
package journal

// Weights are stored as x10 integers, exactly as on the device.
const Schema = `
CREATE TABLE IF NOT EXISTS treatments (
	session_id TEXT PRIMARY KEY,
	started INTEGER NOT NULL,
	completed DATETIME NOT NULL,
	pre_weight INTEGER NOT NULL,
	dry_weight INTEGER NOT NULL,
	post_weight INTEGER NOT NULL,
	treatment_time INTEGER NOT NULL,
	delta_selection INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_treatments_completed ON treatments(completed);
`

// PostgresSchema is Schema with Postgres column types.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS treatments (
	session_id TEXT PRIMARY KEY,
	started BIGINT NOT NULL,
	completed TIMESTAMPTZ NOT NULL,
	pre_weight INTEGER NOT NULL,
	dry_weight INTEGER NOT NULL,
	post_weight INTEGER NOT NULL,
	treatment_time SMALLINT NOT NULL,
	delta_selection SMALLINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_treatments_completed ON treatments(completed);
`
