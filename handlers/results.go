// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-count/cliparse"
	"github.com/danielhkuo/quickly-count/db"
	"github.com/danielhkuo/quickly-count/middleware"
	"github.com/danielhkuo/quickly-count/models"
	"github.com/danielhkuo/quickly-count/rules"
	"github.com/danielhkuo/quickly-count/tally"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /sessions/{id}/results/{system}
// Counts the stored ballots, records the outcome as a snapshot and returns it.
// An optional winners query parameter overrides the system's ":winners" suffix.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	system := r.PathValue("system")

	rs, winners, err := rules.ParseSystem(system)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if q := r.URL.Query().Get("winners"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "winners must be a non-negative integer")
			return
		}
		winners = n
	}

	c, err := db.LoadBallots(r.Context(), h.db, sessionID)
	if err != nil {
		sessionError(w, err, "failed to load ballots")
		return
	}

	counter := rules.NewCounter(c)
	results := make([]models.RuleResult, len(rs))
	for i, rule := range rs {
		result, err := counter.Results(rule, winners)
		if err != nil {
			countError(w, err)
			return
		}
		results[i] = models.RuleResult{Rule: rule.String(), Name: rule.Name(), Results: result}
	}

	snapshot := models.ResultSnapshot{
		SessionID:   sessionID,
		System:      system,
		Winners:     winners,
		BallotCount: len(c),
		Results:     results,
	}
	if err := db.SaveSnapshot(r.Context(), h.db, &snapshot); err != nil {
		slog.Error("failed to save snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	slog.Info("results computed", "session_id", sessionID, "system", system, "snapshot_id", snapshot.ID)

	middleware.JSONResponse(w, http.StatusOK, snapshot)
}

// ListSnapshots handles GET /sessions/{id}/snapshots
func (h *ResultsHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := db.ListSnapshots(r.Context(), h.db, r.PathValue("id"))
	if err != nil {
		sessionError(w, err, "failed to list snapshots")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snapshots)
}

// ListSystems handles GET /systems
func (h *ResultsHandler) ListSystems(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, rules.Systems)
}

// countError maps tallying errors to responses
func countError(w http.ResponseWriter, err error) {
	var invalid *rules.InvalidRuleError
	switch {
	case errors.As(err, &invalid):
		middleware.ErrorResponse(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, tally.ErrEmptyBallots):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "no ballots to count")
	case errors.Is(err, tally.ErrTooManySubsets):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to count ballots")
	}
}
