// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the counting service.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health (pings the database):

	GET /health

Counting sessions (uploads and minimization require X-Admin-Key):

	POST /sessions                - Create session
	GET  /sessions/{id}           - Session summary
	POST /sessions/{id}/ballots   - Append ballots
	POST /sessions/{id}/minimize  - Truncate stored ballots

Results:

	GET /sessions/{id}/results/{system} - Count and store a snapshot
	GET /sessions/{id}/snapshots        - Stored snapshots
	GET /systems                        - Rule identifiers and names
*/
package router
