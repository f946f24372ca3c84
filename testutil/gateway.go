// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/pollbot/tally"
)

// Call is one recorded gateway call
type Call struct {
	Op        string
	ChannelID string
	Handle    string
	UserID    string
	Text      string
	View      tally.View
}

// FakeGateway records every call and fails on request. Safe for concurrent use.
type FakeGateway struct {
	mu      sync.Mutex
	calls   []Call
	fail    map[string]error
	handles int
	hold    chan struct{}
}

// NewFakeGateway returns a gateway that succeeds until told otherwise
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{fail: make(map[string]error)}
}

// Fail makes every later call of op return err. A nil err clears it.
func (g *FakeGateway) Fail(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.fail, op)
		return
	}
	g.fail[op] = err
}

// HoldPosts blocks every later Post until release is called or the post's
// context ends. Calling release more than once is safe.
func (g *FakeGateway) HoldPosts() (release func()) {
	hold := make(chan struct{})
	g.mu.Lock()
	g.hold = hold
	g.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(hold) }) }
}

func (g *FakeGateway) Post(ctx context.Context, channelID string, view tally.View) (string, error) {
	g.mu.Lock()
	hold := g.hold
	g.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			g.mu.Lock()
			g.calls = append(g.calls, Call{Op: "post", ChannelID: channelID, View: view})
			g.mu.Unlock()
			return "", ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.fail["post"]; err != nil {
		g.calls = append(g.calls, Call{Op: "post", ChannelID: channelID, View: view})
		return "", err
	}
	g.handles++
	handle := fmt.Sprintf("1700000000.%06d", g.handles)
	g.calls = append(g.calls, Call{Op: "post", ChannelID: channelID, Handle: handle, View: view})
	return handle, nil
}

func (g *FakeGateway) Update(_ context.Context, channelID, handle string, view tally.View) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, Call{Op: "update", ChannelID: channelID, Handle: handle, View: view})
	return g.fail["update"]
}

func (g *FakeGateway) NotifyEphemeral(_ context.Context, channelID, userID, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, Call{Op: "ephemeral", ChannelID: channelID, UserID: userID, Text: text})
	return g.fail["ephemeral"]
}

// Calls returns a copy of every recorded call, in order
func (g *FakeGateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// CallsOf returns the recorded calls of one op
func (g *FakeGateway) CallsOf(op string) []Call {
	var out []Call
	for _, c := range g.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
