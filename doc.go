// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the poll bot server.

The bot adds a /poll slash command to Slack. A poll is a question with 2 to
10 options posted as a message with one button per option. Anyone in the
channel can vote and change their vote; each voter privately sees the
current results after voting. The creator closes the poll, which replaces
the buttons with the final results for everyone.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SLACK_BOT_TOKEN=xoxb-... SLACK_SIGNING_SECRET=... go run .

Or with flags:

	go run . -p 3000 -token xoxb-... -signing-secret ...

A .env file in the working directory is read if present.

# Configuration

Required settings:

  - SLACK_BOT_TOKEN (-token): bot token with chat:write and channels:join
  - SLACK_SIGNING_SECRET (-signing-secret): verifies Slack callbacks

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_URL (-d), DATABASE_TYPE (-t), JOURNAL_SALT: audit journal
  - POLL_ID_SCHEME, BOT_NAME, DELIVERY_TIMEOUT, LOG_LEVEL, LOG_FORMAT

Polls live in memory only. Restarting the server forgets every poll; buttons
on old messages then do nothing.

# Architecture

  - polls: lifecycle controller (create, vote, close)
  - store: in-memory poll registry with per-poll locks
  - tally: vote counting and gateway-neutral renders
  - command: slash command tokenizer
  - action: button payload codec
  - notify: ordered background delivery of Slack API calls
  - slackgw: Slack Web API gateway and Block Kit rendering
  - handlers, router, middleware: HTTP surface
  - db, auth: optional audit journal and request signing
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
