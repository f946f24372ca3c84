// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the journal database and verifies the connection
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite, "":
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if driver == "sqlite" {
		// one writer; also keeps ":memory:" on a single database
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the journal.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Poll events (append-only audit trail, never replayed)
CREATE TABLE IF NOT EXISTS poll_event (
    id TEXT PRIMARY KEY,
    seq BIGINT NOT NULL UNIQUE,
    poll_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('created', 'voted', 'closed', 'close_denied', 'rolled_back')),
    actor_hash TEXT NOT NULL,
    option_index INTEGER,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_event_poll_id ON poll_event(poll_id, seq);
CREATE INDEX IF NOT EXISTS idx_poll_event_kind ON poll_event(kind);
`
