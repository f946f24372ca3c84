// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides request verification and identity hashing.

# Request Signatures

Every request from Slack carries an HMAC-SHA256 signature over
"v0:{timestamp}:{body}" keyed by the app's signing secret:

	err := auth.VerifyRequest(r.Header, body, cfg.SigningSecret)

Requests with missing headers, a timestamp more than five minutes old, or a
mismatched signature fail with ErrInvalidSignature.

Sign produces the same signature, for tests and local tooling:

	sig := auth.Sign(secret, time.Now().Unix(), body)

# User Hashing

The audit journal never stores raw user IDs:

	hash := auth.HashUser(userID, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
