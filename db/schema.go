// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Counting sessions
CREATE TABLE IF NOT EXISTS counting_session (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Ballots, kept in upload order within a session
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES counting_session(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    UNIQUE (session_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_ballot_session_id ON ballot(session_id);

-- Ranked entries
CREATE TABLE IF NOT EXISTS ballot_entry (
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    candidate TEXT NOT NULL,
    entry_rank INTEGER NOT NULL,
    PRIMARY KEY (ballot_id, candidate)
);

-- Result Snapshots
CREATE TABLE IF NOT EXISTS result_snapshot (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES counting_session(id) ON DELETE CASCADE,
    system TEXT NOT NULL,
    winners INTEGER NOT NULL,
    ballot_count INTEGER NOT NULL,
    computed_at TIMESTAMP NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_result_snapshot_session_id ON result_snapshot(session_id);
`
