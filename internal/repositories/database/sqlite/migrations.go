package sqlite

import "database/sql"

// schema contains the SQL statements to set up the local database.
// These run on startup to ensure tables exist. Amounts are stored as TEXT
// (exact decimal strings), timestamps as INTEGER nanoseconds since the epoch.
const schema = `
CREATE TABLE IF NOT EXISTS businesses (
    business_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    created_by TEXT NOT NULL,
    last_updated_at INTEGER NOT NULL,
    last_updated_by TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_businesses_name_nocase ON businesses(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS records (
    record_id TEXT PRIMARY KEY,
    business_id TEXT NOT NULL,
    occurred_at INTEGER NOT NULL,
    amount TEXT NOT NULL,
    payee TEXT NOT NULL,
    category TEXT NOT NULL,
    transaction_type TEXT NOT NULL,
    notes TEXT,
    receipt_ref TEXT,
    created_at INTEGER NOT NULL,
    created_by TEXT NOT NULL,
    last_updated_at INTEGER NOT NULL,
    last_updated_by TEXT NOT NULL,
    FOREIGN KEY (business_id) REFERENCES businesses(business_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_records_business_occurred ON records(business_id, occurred_at DESC, created_at DESC);

CREATE TABLE IF NOT EXISTS record_changes (
    change_id TEXT PRIMARY KEY,
    record_id TEXT NOT NULL,
    field TEXT NOT NULL,
    old_value TEXT NOT NULL,
    new_value TEXT NOT NULL,
    actor_id TEXT NOT NULL,
    changed_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_record_changes_record ON record_changes(record_id, changed_at DESC);

CREATE TABLE IF NOT EXISTS app_settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// runMigrations applies the schema to the database.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
