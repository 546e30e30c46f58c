package database

// SQL migrations for the wealthfolio database.
// All migrations use IF NOT EXISTS to be idempotent.

var migrations = []string{
	migrationBlobs,
	migrationBlobsIndex,
}

// Persisted state is a handful of serialized-object blobs, one per logical
// store (portfolio batch, history, invoices, settings).
const migrationBlobs = `
CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationBlobsIndex = `
CREATE INDEX IF NOT EXISTS idx_blobs_updated_at ON blobs(updated_at);
`
