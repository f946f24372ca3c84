// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/slack-go/slack"
)

var (
	ErrInvalidSignature = errors.New("invalid request signature")
	ErrMissingSecret    = errors.New("signing secret not configured")
)

// Slack request signing headers
const (
	HeaderSignature = "X-Slack-Signature"
	HeaderTimestamp = "X-Slack-Request-Timestamp"
)

// VerifyRequest checks a Slack request signature over body.
// Stale timestamps and missing headers are rejected too.
func VerifyRequest(header http.Header, body []byte, secret string) error {
	if secret == "" {
		return ErrMissingSecret
	}

	sv, err := slack.NewSecretsVerifier(header, secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if _, err := sv.Write(body); err != nil {
		return fmt.Errorf("failed to hash request body: %w", err)
	}
	if err := sv.Ensure(); err != nil {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the v0 signature Slack sends for body at timestamp.
// Used to sign test requests and by local tooling.
func Sign(secret string, timestamp int64, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte("v0:" + strconv.FormatInt(timestamp, 10) + ":"))
	h.Write(body)
	return "v0=" + hex.EncodeToString(h.Sum(nil))
}

// HashUser creates a one-way hash of a chat user ID for the audit journal.
// The salt keeps hashes from being matched against known user IDs.
func HashUser(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough to tell voters apart
	return hex.EncodeToString(sum[:8])
}
