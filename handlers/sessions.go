// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-count/auth"
	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/cliparse"
	"github.com/danielhkuo/quickly-count/db"
	"github.com/danielhkuo/quickly-count/middleware"
	"github.com/danielhkuo/quickly-count/minimize"
	"github.com/danielhkuo/quickly-count/models"
	"github.com/danielhkuo/quickly-count/rules"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	session, err := db.CreateSession(r.Context(), h.db, req.Title)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", session.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: session.ID,
		AdminKey:  auth.GenerateAdminKey(session.ID, h.cfg.AdminKeySalt),
	})
}

// AppendBallots handles POST /sessions/{id}/ballots
// The body is a JSON array of ballots, each an array of [rank, candidate] pairs.
func (h *SessionHandler) AppendBallots(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if err := auth.ValidateRequest(r, sessionID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	middleware.LimitBody(w, r)
	c, err := ballots.Load(r.Body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(c) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one ballot is required")
		return
	}

	count, err := db.AppendBallots(r.Context(), h.db, sessionID, c)
	if err != nil {
		sessionError(w, err, "failed to append ballots")
		return
	}

	slog.Info("ballots appended", "session_id", sessionID, "appended", len(c), "ballot_count", count)

	middleware.JSONResponse(w, http.StatusCreated, models.AppendBallotsResponse{
		Appended:    len(c),
		BallotCount: count,
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	session, err := db.GetSession(r.Context(), h.db, sessionID)
	if err != nil {
		sessionError(w, err, "failed to query session")
		return
	}

	c, err := db.LoadBallots(r.Context(), h.db, sessionID)
	if err != nil {
		sessionError(w, err, "failed to load ballots")
		return
	}

	candidates := c.Candidates()
	if candidates == nil {
		candidates = []ballots.Candidate{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionSummary{
		Session:      session,
		BallotCount:  len(c),
		BallotLength: c.Length(),
		Candidates:   candidates,
	})
}

// Minimize handles POST /sessions/{id}/minimize
// The stored ballots are replaced, in a new random order, by the shortest
// truncation that keeps the results of the requested systems.
func (h *SessionHandler) Minimize(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if err := auth.ValidateRequest(r, sessionID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.MinimizeRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rs, winners, err := rules.ParseSystem(req.Systems)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Winners < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "winners must not be negative")
		return
	}
	if req.Winners > 0 {
		winners = req.Winners
	}

	strategy := h.cfg.Strategy
	if req.Strategy != "" {
		if strategy, err = minimize.ParseStrategy(req.Strategy); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	c, err := db.LoadBallots(r.Context(), h.db, sessionID)
	if err != nil {
		sessionError(w, err, "failed to load ballots")
		return
	}
	if len(c) == 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "no ballots to minimize")
		return
	}

	m := minimize.Minimizer{Rules: rs, Winners: winners, Strategy: strategy}
	res, err := m.Minimize(r.Context(), c)
	if err != nil {
		countError(w, err)
		return
	}

	if err := db.ReplaceBallots(r.Context(), h.db, sessionID, res.Ballots); err != nil {
		sessionError(w, err, "failed to replace ballots")
		return
	}

	slog.Info("ballots minimized",
		"session_id", sessionID,
		"strategy", strategy,
		"original_length", res.OriginalLength,
		"length", res.Length,
		"probes", res.Probes,
	)

	middleware.JSONResponse(w, http.StatusOK, models.MinimizeResponse{
		OriginalLength: res.OriginalLength,
		Length:         res.Length,
		Probes:         res.Probes,
		BallotCount:    len(res.Ballots),
	})
}

// sessionError maps storage errors to responses
func sessionError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, db.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	slog.Error(msg, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
