package storage

const Schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS kv_revisions (
	rev TEXT PRIMARY KEY,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	written_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_kv_revisions_key ON kv_revisions(key, rev);
`
