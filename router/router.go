// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-count/cliparse"
	"github.com/danielhkuo/quickly-count/handlers"
	"github.com/danielhkuo/quickly-count/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	sessionHandler := handlers.NewSessionHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})

	// Counting sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/ballots", middleware.WithLogging(sessionHandler.AppendBallots))
	mux.HandleFunc("POST /sessions/{id}/minimize", middleware.WithLogging(sessionHandler.Minimize))

	// Results
	mux.HandleFunc("GET /sessions/{id}/results/{system}", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /sessions/{id}/snapshots", middleware.WithLogging(resultsHandler.ListSnapshots))
	mux.HandleFunc("GET /systems", middleware.WithLogging(resultsHandler.ListSystems))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-count API v1"))
	})

	return mux
}
