// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the store when a poll ID does not resolve.
var ErrNotFound = errors.New("poll not found")

// ValidationError rejects malformed input before any state is created.
// Message is safe to show to the requester.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NewValidationError builds a ValidationError
func NewValidationError(reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}

// DeliveryError wraps a messaging gateway failure
type DeliveryError struct {
	Op  string
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed (%s): %v", e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDelivery reports whether err is (or wraps) a DeliveryError
func IsDelivery(err error) bool {
	var de *DeliveryError
	return errors.As(err, &de)
}

// User-facing corrective messages for rejected create commands
const (
	UsageMessage          = "⚠️ Usage: `/poll \"Your question\" \"Option A\" \"Option B\"` (2–10 options, quoted)"
	TooManyOptionsMessage = "⚠️ Maximum 10 options allowed."
	BlankOptionMessage    = "⚠️ Options can't be blank. Put some text between the quotes."
)
