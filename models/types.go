// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/quickly-count/ballots"
)

// Request types

type CreateSessionRequest struct {
	Title string `json:"title"`
}

// Systems uses the same comma separated rule list as the CLI, with an
// optional ":winners" suffix
type MinimizeRequest struct {
	Systems  string `json:"systems"`
	Winners  int    `json:"winners"`
	Strategy string `json:"strategy"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	AdminKey  string `json:"admin_key"`
}

type AppendBallotsResponse struct {
	Appended    int `json:"appended"`
	BallotCount int `json:"ballot_count"`
}

type MinimizeResponse struct {
	OriginalLength int `json:"original_length"`
	Length         int `json:"length"`
	Probes         int `json:"probes"`
	BallotCount    int `json:"ballot_count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionSummary struct {
	Session
	BallotCount  int                 `json:"ballot_count"`
	BallotLength int                 `json:"ballot_length"`
	Candidates   []ballots.Candidate `json:"candidates"`
}

// RuleResult holds the outcome of one rule within a snapshot
type RuleResult struct {
	Rule    string              `json:"rule"`
	Name    string              `json:"name"`
	Results []ballots.Candidate `json:"results"`
}

// ResultSnapshot is an immutable record of one results computation
type ResultSnapshot struct {
	ID          string       `json:"id"`
	SessionID   string       `json:"session_id"`
	System      string       `json:"system"`
	Winners     int          `json:"winners"`
	BallotCount int          `json:"ballot_count"`
	ComputedAt  time.Time    `json:"computed_at"`
	Results     []RuleResult `json:"results"`
}
