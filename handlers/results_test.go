// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/models"
	"github.com/danielhkuo/quickly-count/rules"
	"github.com/danielhkuo/quickly-count/testutil"
)

func TestGetResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn, testutil.GetTestConfig())
	sessionID, _ := testutil.CreateTestSession(t, conn, "results", hiddenWinner)
	emptyID, _ := testutil.CreateTestSession(t, conn, "empty", nil)

	tests := []struct {
		name           string
		sessionID      string
		system         string
		query          string
		expectedStatus int
		want           [][]ballots.Candidate
	}{
		{
			name:           "condorcet",
			sessionID:      sessionID,
			system:         "condorcet",
			expectedStatus: http.StatusOK,
			want:           [][]ballots.Candidate{{"B"}},
		},
		{
			name:           "schulze with winners query",
			sessionID:      sessionID,
			system:         "schulze",
			query:          "?winners=2",
			expectedStatus: http.StatusOK,
			want:           [][]ballots.Candidate{{"B", "C"}},
		},
		{
			name:           "several systems",
			sessionID:      sessionID,
			system:         "condorcet,stv2",
			expectedStatus: http.StatusOK,
			want:           [][]ballots.Candidate{{"B"}, {"A", "C"}},
		},
		{
			name:           "winners suffix",
			sessionID:      sessionID,
			system:         "schulze_new:3",
			expectedStatus: http.StatusOK,
			want:           [][]ballots.Candidate{{"B", "C", "A"}},
		},
		{name: "invalid system", sessionID: sessionID, system: "borda", expectedStatus: http.StatusBadRequest},
		{name: "invalid winners", sessionID: sessionID, system: "schulze", query: "?winners=x", expectedStatus: http.StatusBadRequest},
		{name: "empty session", sessionID: emptyID, system: "stv1", expectedStatus: http.StatusUnprocessableEntity},
		{name: "missing session", sessionID: "missing", system: "condorcet", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sessions/"+tt.sessionID+"/results/"+tt.system+tt.query, nil)
			req.SetPathValue("id", tt.sessionID)
			req.SetPathValue("system", tt.system)
			w := httptest.NewRecorder()

			handler.GetResults(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.ResultSnapshot
			testutil.AssertJSON(t, w, &resp)
			if resp.ID == "" {
				t.Error("Expected snapshot ID")
			}
			if resp.BallotCount != len(hiddenWinner) {
				t.Errorf("Expected ballot count %d, got %d", len(hiddenWinner), resp.BallotCount)
			}

			got := make([][]ballots.Candidate, len(resp.Results))
			for i, r := range resp.Results {
				got[i] = r.Results
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSnapshots(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn, testutil.GetTestConfig())
	sessionID, _ := testutil.CreateTestSession(t, conn, "snapshots", hiddenWinner)

	for _, system := range []string{"condorcet", "stv3"} {
		req := httptest.NewRequest("GET", "/sessions/"+sessionID+"/results/"+system, nil)
		req.SetPathValue("id", sessionID)
		req.SetPathValue("system", system)
		w := httptest.NewRecorder()
		handler.GetResults(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	req := httptest.NewRequest("GET", "/sessions/"+sessionID+"/snapshots", nil)
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()

	handler.ListSnapshots(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var snapshots []models.ResultSnapshot
	testutil.AssertJSON(t, w, &snapshots)
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
	}

	systems := map[string]bool{}
	for _, s := range snapshots {
		systems[s.System] = true
		if len(s.Results) != 1 {
			t.Errorf("Expected one rule result in %s, got %d", s.System, len(s.Results))
		}
	}
	if !systems["condorcet"] || !systems["stv3"] {
		t.Errorf("Expected condorcet and stv3 snapshots, got %v", systems)
	}
}

func TestListSystems(t *testing.T) {
	handler := NewResultsHandler(nil, testutil.GetTestConfig())
	w := httptest.NewRecorder()

	handler.ListSystems(w, httptest.NewRequest("GET", "/systems", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var systems []rules.System
	testutil.AssertJSON(t, w, &systems)
	if diff := cmp.Diff(rules.Systems, systems); diff != "" {
		t.Errorf("Systems mismatch (-want +got):\n%s", diff)
	}
}
