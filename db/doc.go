// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and persistence of counting sessions.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, no cgo) or "postgres" (lib/pq):

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes. Queries use $N placeholders, which both drivers accept,
and timestamps are supplied by the caller rather than a database default.

# Tables

  - counting_session: a named batch of ballots
  - ballot: one row per ballot, ordered by seq within the session
  - ballot_entry: the (candidate, rank) pairs of a ballot
  - result_snapshot: the JSON results of one system, immutable once written

# Relationships

	counting_session 1──* ballot
	ballot 1──* ballot_entry
	counting_session 1──* result_snapshot

All foreign keys use ON DELETE CASCADE.

# Errors

Operations on a missing session return ErrSessionNotFound.
ReplaceBallots stores its ballots in a fresh random order.
*/
package db
