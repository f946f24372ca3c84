// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Option count bounds for a poll
const (
	MinOptions = 2
	MaxOptions = 10
)

// Poll status constants, used in logs and the journal
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Poll is a question with an ordered set of options and one ballot per voter.
//
// Options are addressed by position. Votes maps a voter ID to the index of
// the option that voter chose most recently.
type Poll struct {
	ID            string
	Question      string
	Options       []string
	Votes         map[string]int
	CreatorID     string
	ChannelID     string
	MessageHandle string // empty until the initial post succeeds
	Closed        bool
	CreatedAt     time.Time
}

// Status returns StatusOpen or StatusClosed
func (p *Poll) Status() string {
	if p.Closed {
		return StatusClosed
	}
	return StatusOpen
}

// Clone returns a deep copy that shares no mutable state with p.
// Renders and gateway calls only ever see clones.
func (p *Poll) Clone() Poll {
	c := *p
	c.Options = append([]string(nil), p.Options...)
	c.Votes = make(map[string]int, len(p.Votes))
	for voter, idx := range p.Votes {
		c.Votes[voter] = idx
	}
	return c
}

// ValidOption reports whether idx addresses one of the poll's options
func (p *Poll) ValidOption(idx int) bool {
	return idx >= 0 && idx < len(p.Options)
}

// ErrorResponse is the JSON body of a failed non-Slack request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
