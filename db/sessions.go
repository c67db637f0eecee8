// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/models"
)

// CreateSession inserts a new counting session
func CreateSession(ctx context.Context, db *sql.DB, title string) (models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO counting_session (id, title, created_at)
		VALUES ($1, $2, $3)
	`, session.ID, session.Title, session.CreatedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// GetSession fetches a session by ID
func GetSession(ctx context.Context, db *sql.DB, id string) (models.Session, error) {
	var session models.Session
	err := db.QueryRowContext(ctx, `
		SELECT id, title, created_at
		FROM counting_session
		WHERE id = $1
	`, id).Scan(&session.ID, &session.Title, &session.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to query session: %w", err)
	}

	return session, nil
}

// AppendBallots adds ballots after any already stored and returns the new
// ballot count
func AppendBallots(ctx context.Context, db *sql.DB, sessionID string, c ballots.Collection) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := countBallots(ctx, tx, sessionID)
	if err != nil {
		return 0, err
	}
	if err := insertBallots(ctx, tx, sessionID, count, c); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ballots: %w", err)
	}

	return count + len(c), nil
}

// ReplaceBallots swaps every stored ballot of the session for a shuffled copy
// of c, so the stored order says nothing about the previous one
func ReplaceBallots(ctx context.Context, db *sql.DB, sessionID string, c ballots.Collection) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := countBallots(ctx, tx, sessionID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM ballot_entry
		WHERE ballot_id IN (SELECT id FROM ballot WHERE session_id = $1)
	`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete ballot entries: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM ballot WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete ballots: %w", err)
	}

	if err := insertBallots(ctx, tx, sessionID, 0, ballots.Shuffled(c, nil)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballots: %w", err)
	}

	return nil
}

// LoadBallots returns the stored ballots of a session in upload order
func LoadBallots(ctx context.Context, db *sql.DB, sessionID string) (ballots.Collection, error) {
	if _, err := GetSession(ctx, db, sessionID); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT b.id, e.candidate, e.entry_rank
		FROM ballot b
		LEFT JOIN ballot_entry e ON e.ballot_id = b.id
		WHERE b.session_id = $1
		ORDER BY b.seq, e.entry_rank, e.candidate
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	c := ballots.Collection{}
	lastID := ""
	for rows.Next() {
		var ballotID string
		var candidate sql.NullString
		var rank sql.NullInt64
		if err := rows.Scan(&ballotID, &candidate, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan ballot entry: %w", err)
		}

		if ballotID != lastID {
			c = append(c, ballots.Ballot{})
			lastID = ballotID
		}
		if candidate.Valid {
			last := len(c) - 1
			c[last] = append(c[last], ballots.Entry{Rank: int(rank.Int64), Candidate: ballots.Candidate(candidate.String)})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ballots: %w", err)
	}

	return c, nil
}

// SaveSnapshot stores a results computation, filling in its ID and time
func SaveSnapshot(ctx context.Context, db *sql.DB, snapshot *models.ResultSnapshot) error {
	payload, err := json.Marshal(snapshot.Results)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	snapshot.ID = uuid.NewString()
	snapshot.ComputedAt = time.Now().UTC()

	_, err = db.ExecContext(ctx, `
		INSERT INTO result_snapshot (id, session_id, system, winners, ballot_count, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, snapshot.ID, snapshot.SessionID, snapshot.System, snapshot.Winners, snapshot.BallotCount, snapshot.ComputedAt, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// ListSnapshots returns the stored snapshots of a session, oldest first
func ListSnapshots(ctx context.Context, db *sql.DB, sessionID string) ([]models.ResultSnapshot, error) {
	if _, err := GetSession(ctx, db, sessionID); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, session_id, system, winners, ballot_count, computed_at, payload
		FROM result_snapshot
		WHERE session_id = $1
		ORDER BY computed_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.ResultSnapshot{}
	for rows.Next() {
		var s models.ResultSnapshot
		var payload string
		if err := rows.Scan(&s.ID, &s.SessionID, &s.System, &s.Winners, &s.BallotCount, &s.ComputedAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &s.Results); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot %s: %w", s.ID, err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}

	return snapshots, nil
}

// countBallots locks the session row until the transaction ends and returns
// the number of stored ballots, failing if the session does not exist.
// Concurrent writers to one session wait on the lock, so seq stays unique.
func countBallots(ctx context.Context, tx *sql.Tx, sessionID string) (int, error) {
	// A no-op UPDATE takes the row lock on postgres and the write lock on sqlite
	res, err := tx.ExecContext(ctx, `UPDATE counting_session SET title = title WHERE id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock session: %w", err)
	}
	locked, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to lock session: %w", err)
	}
	if locked == 0 {
		return 0, ErrSessionNotFound
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM ballot WHERE session_id = $1`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}

	return count, nil
}

func insertBallots(ctx context.Context, tx *sql.Tx, sessionID string, start int, c ballots.Collection) error {
	for i, ballot := range c {
		ballotID := uuid.NewString()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ballot (id, session_id, seq)
			VALUES ($1, $2, $3)
		`, ballotID, sessionID, start+i)
		if err != nil {
			return fmt.Errorf("failed to insert ballot: %w", err)
		}

		for _, entry := range ballot {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO ballot_entry (ballot_id, candidate, entry_rank)
				VALUES ($1, $2, $3)
			`, ballotID, string(entry.Candidate), entry.Rank)
			if err != nil {
				return fmt.Errorf("failed to insert ballot entry: %w", err)
			}
		}
	}
	return nil
}
