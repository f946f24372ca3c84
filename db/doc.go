// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db holds the optional audit journal of poll events.

# Connecting

Open picks the driver by database type (sqlite via modernc.org/sqlite, or
postgres via lib/pq) and pings it:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes the journal table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.

# Journal

One row per lifecycle event: created, voted, closed, close_denied,
rolled_back. User IDs are stored only as HMAC hashes (see auth.HashUser).

	j, err := db.NewJournal(conn, cfg.JournalSalt)
	err = j.Record(ctx, pollID, db.EventVoted, userID, &option)

Each event gets a sequence number that continues from the highest one in
the table, and Events returns a poll's trail in that order.

The journal is written after the in-memory store commits and is never read
back at startup; poll state does not survive a restart. NopJournal stands in
when no database is configured.
*/
package db
