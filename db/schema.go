// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the input tables. The engine only reads them; the
// schema documents the expected layout and seeds fixtures.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Plain SQL shared by SQLite and PostgreSQL
const schema = `
-- Roll-call votes, one row per country per resolution
CREATE TABLE IF NOT EXISTS vote_record (
    row_num INTEGER NOT NULL,
    resolution_id TEXT NOT NULL,
    vote_date TEXT NOT NULL,
    country_name TEXT NOT NULL,
    vote_code TEXT
);

CREATE INDEX IF NOT EXISTS idx_vote_record_row_num ON vote_record(row_num);
CREATE INDEX IF NOT EXISTS idx_vote_record_resolution ON vote_record(resolution_id);

-- Optional topic labels
CREATE TABLE IF NOT EXISTS resolution_topic (
    resolution_id TEXT PRIMARY KEY,
    topic_label TEXT NOT NULL
);
`
