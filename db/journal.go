// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbot/auth"
)

// Event kinds
const (
	EventCreated     = "created"
	EventVoted       = "voted"
	EventClosed      = "closed"
	EventCloseDenied = "close_denied"
	EventRolledBack  = "rolled_back"
)

// Event is one journal row. Option is only set for votes.
// Seq orders events in the order they were recorded.
type Event struct {
	ID        string
	Seq       int64
	PollID    string
	Kind      string
	ActorHash string
	Option    *int
	CreatedAt time.Time
}

// Journal appends poll events to a SQL table
type Journal struct {
	db   *sql.DB
	salt string
	now  func() time.Time
	seq  atomic.Int64
}

// NewJournal returns a journal writing to db. Actor IDs are hashed with salt.
// Sequence numbers continue from the highest one already stored.
func NewJournal(db *sql.DB, salt string) (*Journal, error) {
	j := &Journal{db: db, salt: salt, now: time.Now}

	var last int64
	err := db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM poll_event`).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal sequence: %w", err)
	}
	j.seq.Store(last)
	return j, nil
}

// Record appends an event for actorID
func (j *Journal) Record(ctx context.Context, pollID, kind, actorID string, option *int) error {
	var opt sql.NullInt64
	if option != nil {
		opt = sql.NullInt64{Int64: int64(*option), Valid: true}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO poll_event (id, seq, poll_id, kind, actor_hash, option_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), j.seq.Add(1), pollID, kind, auth.HashUser(actorID, j.salt), opt, j.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record %s event: %w", kind, err)
	}
	return nil
}

// Events returns a poll's events, oldest first
func (j *Journal) Events(ctx context.Context, pollID string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, seq, poll_id, kind, actor_hash, option_index, created_at
		FROM poll_event
		WHERE poll_id = $1
		ORDER BY seq
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var opt sql.NullInt64
		if err := rows.Scan(&ev.ID, &ev.Seq, &ev.PollID, &ev.Kind, &ev.ActorHash, &opt, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if opt.Valid {
			n := int(opt.Int64)
			ev.Option = &n
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// NopJournal discards events. Used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, string, string, string, *int) error { return nil }
