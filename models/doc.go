// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the poll entity and the error taxonomy shared by the
store, the lifecycle controller, and the HTTP layer.

# Domain Types

  - Poll: question, ordered options, one ballot per voter, creator, message location
  - ErrorResponse: JSON error body for non-Slack requests

Polls are only ever handed out as clones:

	snap := poll.Clone()

# Constants

Option bounds:

	MinOptions = 2
	MaxOptions = 10

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

# Errors

  - ValidationError: malformed create command or out-of-range vote; Message is user-facing
  - DeliveryError: messaging gateway failure, wraps the cause
  - ErrNotFound: poll ID does not resolve

Stale votes and closes on missing or closed polls are not errors; the
controller reports them as ignored outcomes instead.
*/
package models
