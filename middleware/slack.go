// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollbot/auth"
)

// VerifySlack rejects requests not signed with the app's signing secret.
// The body is read once and restored for the handler.
func VerifySlack(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				ErrorResponse(w, http.StatusBadRequest, "could not read body")
				return
			}
			r.Body = io.NopCloser(bytes.NewBuffer(body)) // Reset for handler

			if err := auth.VerifyRequest(r.Header, body, secret); err != nil {
				slog.Warn("slack signature rejected",
					"path", r.URL.Path,
					"remote", r.RemoteAddr,
					"error", err,
				)
				ErrorResponse(w, http.StatusUnauthorized, "invalid signature")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
