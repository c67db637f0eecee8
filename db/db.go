// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var (
	ErrSessionNotFound = errors.New("counting session not found")
	ErrUnknownDatabase = errors.New("unknown database type")
)

// Open connects to a sqlite or postgres database and verifies the connection
func Open(ctx context.Context, databaseType, url string) (*sql.DB, error) {
	switch databaseType {
	case TypeSQLite, TypePostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatabase, databaseType)
	}

	conn, err := sql.Open(databaseType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}

	// sqlite allows a single writer; in-memory databases are also per connection
	if databaseType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", databaseType, err)
	}

	return conn, nil
}
