// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

All middleware has the chi shape func(http.Handler) http.Handler.

# Request Logging

	r.Use(middleware.WithLogging)

Logs request start at debug level (method, path, remote) and completion
(duration_ms), both tagged with the chi request ID.

# Slack Signatures

	r.With(middleware.VerifySlack(cfg.SigningSecret)).Post("/slack/commands", h.Command)

Reads the body, checks X-Slack-Signature and X-Slack-Request-Timestamp
with auth.VerifyRequest and restores the body for the handler. Unsigned or
stale requests get 401.

# Metrics

	r.Use(middleware.Metrics)

Counts requests and observes latency labelled by chi route pattern, so path
parameters do not blow up label cardinality.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
*/
package middleware
