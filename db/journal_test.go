// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/danielhkuo/pollbot/auth"
)

func setupJournal(t *testing.T) (*Journal, *sql.DB) {
	t.Helper()

	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	j, err := NewJournal(conn, "test-salt")
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	return j, conn
}

func TestCreateSchemaIdempotent(t *testing.T) {
	_, conn := setupJournal(t)

	if err := CreateSchema(conn); err != nil {
		t.Errorf("second CreateSchema failed: %v", err)
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestRecordAndEvents(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	two := 2
	if err := j.Record(ctx, "1", EventCreated, "U1", nil); err != nil {
		t.Fatalf("Record created: %v", err)
	}
	if err := j.Record(ctx, "1", EventVoted, "U2", &two); err != nil {
		t.Fatalf("Record voted: %v", err)
	}
	if err := j.Record(ctx, "2", EventCreated, "U3", nil); err != nil {
		t.Fatalf("Record other poll: %v", err)
	}

	events, err := j.Events(ctx, "1")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	if events[0].Kind != EventCreated || events[0].Option != nil {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Kind != EventVoted || events[1].Option == nil || *events[1].Option != 2 {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestEventsSameTimestampKeepRecordOrder(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()

	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	j.now = func() time.Time { return at }

	kinds := []string{EventCreated, EventVoted, EventVoted, EventVoted, EventCloseDenied, EventClosed}
	for i, kind := range kinds {
		opt := i
		if err := j.Record(ctx, "1", kind, "U1", &opt); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	events, err := j.Events(ctx, "1")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != len(kinds) {
		t.Fatalf("expected %d events, got %d", len(kinds), len(events))
	}

	for i, ev := range events {
		if ev.Option == nil || *ev.Option != i {
			t.Errorf("event %d out of order: %+v", i, ev)
		}
		if !ev.CreatedAt.Equal(at) {
			t.Errorf("event %d CreatedAt = %v, want %v", i, ev.CreatedAt, at)
		}
		if i > 0 && ev.Seq <= events[i-1].Seq {
			t.Errorf("event %d seq %d not after %d", i, ev.Seq, events[i-1].Seq)
		}
	}
}

func TestSequenceContinuesAcrossJournals(t *testing.T) {
	j, conn := setupJournal(t)
	ctx := context.Background()

	if err := j.Record(ctx, "1", EventCreated, "U1", nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	reopened, err := NewJournal(conn, "test-salt")
	if err != nil {
		t.Fatalf("NewJournal: %v", err)
	}
	if err := reopened.Record(ctx, "1", EventClosed, "U1", nil); err != nil {
		t.Fatalf("Record after reopen: %v", err)
	}

	events, err := reopened.Events(ctx, "1")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != EventCreated || events[1].Kind != EventClosed {
		t.Errorf("unexpected order: %s, %s", events[0].Kind, events[1].Kind)
	}
	if events[1].Seq != events[0].Seq+1 {
		t.Errorf("expected consecutive seqs, got %d and %d", events[0].Seq, events[1].Seq)
	}
}

func TestRecordHashesActor(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()

	if err := j.Record(ctx, "1", EventClosed, "U123", nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	events, err := j.Events(ctx, "1")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	if events[0].ActorHash == "U123" {
		t.Error("raw user ID stored in journal")
	}
	if events[0].ActorHash != auth.HashUser("U123", "test-salt") {
		t.Errorf("actor hash mismatch: %s", events[0].ActorHash)
	}
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	j, _ := setupJournal(t)

	if err := j.Record(context.Background(), "1", "deleted", "U1", nil); err == nil {
		t.Error("expected CHECK constraint to reject unknown kind")
	}
}

func TestNopJournal(t *testing.T) {
	var j NopJournal
	if err := j.Record(context.Background(), "1", EventVoted, "U1", nil); err != nil {
		t.Errorf("NopJournal returned error: %v", err)
	}
}
