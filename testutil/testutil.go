// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-count/auth"
	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/cliparse"
	"github.com/danielhkuo/quickly-count/db"
)

// TestDBURL is an in-memory sqlite database, private to each connection
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Command:      cliparse.CommandServe,
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestSession creates a session holding c and returns its ID and admin key
func CreateTestSession(t *testing.T, conn *sql.DB, title string, c ballots.Collection) (string, string) {
	t.Helper()

	session, err := db.CreateSession(context.Background(), conn, title)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	if len(c) > 0 {
		if _, err := db.AppendBallots(context.Background(), conn, session.ID, c); err != nil {
			t.Fatalf("Failed to append test ballots: %v", err)
		}
	}

	return session.ID, auth.GenerateAdminKey(session.ID, GetTestConfig().AdminKeySalt)
}

// Ranked builds a ballot ranking names in order
func Ranked(names ...string) ballots.Ballot {
	b := make(ballots.Ballot, len(names))
	for i, name := range names {
		b[i] = ballots.Entry{Rank: i + 1, Candidate: ballots.Candidate(name)}
	}
	return b
}

// Repeat returns n copies of b
func Repeat(n int, b ballots.Ballot) ballots.Collection {
	c := make(ballots.Collection, n)
	for i := range c {
		c[i] = b
	}
	return c
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
