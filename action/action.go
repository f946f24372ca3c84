// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package action encodes poll triggers into opaque action tokens and decodes
// them back into a Vote or Close value before routing.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	votePrefix  = "vote_"
	closePrefix = "close_"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMalformed     = errors.New("malformed action payload")
)

// Action is either a Vote or a Close
type Action interface {
	Target() string
}

// Vote selects the option at Option on poll PollID
type Vote struct {
	PollID string
	Option int
}

func (v Vote) Target() string { return v.PollID }

// Close asks to close poll PollID
type Close struct {
	PollID string
}

func (c Close) Target() string { return c.PollID }

// VoteActionID returns the action identifier for a vote trigger
func VoteActionID(pollID string, option int) string {
	return votePrefix + pollID + "_" + strconv.Itoa(option)
}

// VoteValue returns the payload carried by a vote trigger
func VoteValue(pollID string, option int) string {
	return pollID + ":" + strconv.Itoa(option)
}

// CloseActionID returns the action identifier for a close trigger
func CloseActionID(pollID string) string {
	return closePrefix + pollID
}

// CloseValue returns the payload carried by a close trigger
func CloseValue(pollID string) string {
	return pollID
}

// Decode turns an action identifier and its value into an Action.
// The identifier must agree with the value; anything else is rejected.
func Decode(actionID, value string) (Action, error) {
	switch {
	case strings.HasPrefix(actionID, votePrefix):
		sep := strings.LastIndexByte(value, ':')
		if sep <= 0 {
			return nil, fmt.Errorf("%w: vote value %q", ErrMalformed, value)
		}
		pollID := value[:sep]
		option, err := strconv.Atoi(value[sep+1:])
		if err != nil || option < 0 {
			return nil, fmt.Errorf("%w: vote option in %q", ErrMalformed, value)
		}
		if actionID != VoteActionID(pollID, option) {
			return nil, fmt.Errorf("%w: %q does not match %q", ErrMalformed, actionID, value)
		}
		return Vote{PollID: pollID, Option: option}, nil

	case strings.HasPrefix(actionID, closePrefix):
		if value == "" || actionID != CloseActionID(value) {
			return nil, fmt.Errorf("%w: %q does not match %q", ErrMalformed, actionID, value)
		}
		return Close{PollID: value}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
}
