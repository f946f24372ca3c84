// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll bot.

# Route Registration

NewRouter creates a chi router with all endpoints:

	r := router.NewRouter(ctrl, tasks, cfg)

Every request passes through Prometheus metrics, chi's RequestID, RealIP and
Recoverer, and request logging.

# Endpoints

Health and monitoring:

	GET /health  - {"ok":true}
	GET /metrics - Prometheus exposition
	GET /        - banner

Slack callbacks (require a valid X-Slack-Signature, body capped at 64 KiB):

	POST /slack/commands     - /poll slash command
	POST /slack/interactions - vote and close buttons
*/
package router
