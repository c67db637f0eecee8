// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the counting service.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: session creation, ballot upload, minimization
  - ResultsHandler: counting, result snapshots, the rule table

Handlers are created via constructor functions that accept *sql.DB and Config:

	sessionHandler := handlers.NewSessionHandler(db, cfg)

# Sessions

	POST /sessions                → CreateSession (returns admin_key)
	POST /sessions/{id}/ballots   → AppendBallots
	GET  /sessions/{id}           → GetSession
	POST /sessions/{id}/minimize  → Minimize

Uploads and minimization require the X-Admin-Key header. Ballots are posted
as a JSON array in the ballot file format and appended to any already stored.
Minimizing replaces the stored ballots with a shuffled, truncated copy.

# Results

	GET /sessions/{id}/results/{system}  → GetResults
	GET /sessions/{id}/snapshots         → ListSnapshots
	GET /systems                         → ListSystems

The system is a rule identifier or a comma separated list, with an optional
":winners" suffix; the winners query parameter takes precedence. Every
computation is stored as a result snapshot.

# Errors

  - 400: unknown rule identifier, malformed ballots or parameters
  - 401: missing or wrong admin key
  - 404: unknown session
  - 422: no ballots to count, or too many Schulze STV subsets
*/
package handlers
