// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateSessionRequest: title
  - MinimizeRequest: systems, winners, strategy

Ballot uploads are decoded straight into a ballots.Collection, so they need no
request type.

# Response Types

  - CreateSessionResponse: session_id, admin_key
  - AppendBallotsResponse: appended, ballot_count
  - MinimizeResponse: original_length, length, probes, ballot_count
  - ErrorResponse: error, message

# Domain Types

  - Session: a named counting session
  - SessionSummary: a session with its ballot count, ballot length and candidates
  - ResultSnapshot: the stored results of one system for a session
  - RuleResult: one rule's results within a snapshot
*/
package models
