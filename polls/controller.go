// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollbot/action"
	"github.com/danielhkuo/pollbot/command"
	"github.com/danielhkuo/pollbot/db"
	"github.com/danielhkuo/pollbot/metrics"
	"github.com/danielhkuo/pollbot/models"
	"github.com/danielhkuo/pollbot/notify"
	"github.com/danielhkuo/pollbot/store"
	"github.com/danielhkuo/pollbot/tally"
)

// Delivery ops, also used as metric labels
const (
	OpPost      = "post"
	OpUpdate    = "update"
	OpEphemeral = "ephemeral"
)

// DenialMessage is sent privately to anyone but the creator who tries to close a poll
const DenialMessage = "⚠️ Only the poll creator can close this poll."

var (
	errClosed     = errors.New("poll is closed")
	errNotCreator = errors.New("requester is not the poll creator")
)

// Gateway delivers renders to the chat platform
type Gateway interface {
	Post(ctx context.Context, channelID string, view tally.View) (handle string, err error)
	Update(ctx context.Context, channelID, handle string, view tally.View) error
	NotifyEphemeral(ctx context.Context, channelID, userID, text string) error
}

// Journal records lifecycle events. It is written after the store commits
// and its failures never change poll state.
type Journal interface {
	Record(ctx context.Context, pollID, kind, actorID string, option *int) error
}

// Outcome is the result of a vote or close request
type Outcome int

const (
	// Ignored means the poll was missing or already closed; nothing changed
	Ignored Outcome = iota
	Recorded
	Closed
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Recorded:
		return "recorded"
	case Closed:
		return "closed"
	case Denied:
		return "denied"
	default:
		return "ignored"
	}
}

// Controller drives polls through Open -> Closed
type Controller struct {
	store   *store.Store
	gateway Gateway
	tasks   *notify.Dispatcher
	journal Journal
	botName string
}

// Option configures a Controller
type Option func(*Controller)

// WithJournal enables the audit journal
func WithJournal(j Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithBotName sets the name used in the invite instruction
func WithBotName(name string) Option {
	return func(c *Controller) {
		if name != "" {
			c.botName = name
		}
	}
}

// NewController wires a controller to its store, gateway and dispatcher
func NewController(s *store.Store, gw Gateway, tasks *notify.Dispatcher, opts ...Option) *Controller {
	c := &Controller{
		store:   s,
		gateway: gw,
		tasks:   tasks,
		journal: db.NopJournal{},
		botName: "Polls",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InviteMessage is shown to the requester when the initial post fails
func (c *Controller) InviteMessage() string {
	return fmt.Sprintf("⚠️ Couldn't post poll. Please invite @%s to this channel first: /invite @%s", c.botName, c.botName)
}

// CheckCommand reports whether rawText would make a valid poll.
// It lets callers reject bad commands before doing anything slow.
func (c *Controller) CheckCommand(rawText string) error {
	cmd, err := command.Parse(rawText)
	if err == nil {
		err = store.Validate(cmd.Question, cmd.Options)
	}
	if err != nil {
		metrics.ValidationFailures.Inc()
	}
	return err
}

// CreatePoll parses a command, stores the poll and posts it.
//
// The poll only becomes votable once the post succeeds. If the post fails the
// poll is removed and a *models.DeliveryError is returned. The outcome of the
// post decides, not ctx: a post is bounded by the dispatcher's timeout and
// ctx ending early does not abandon it.
func (c *Controller) CreatePoll(ctx context.Context, rawText, creatorID, channelID string) (models.Poll, error) {
	cmd, err := command.Parse(rawText)
	if err != nil {
		metrics.ValidationFailures.Inc()
		return models.Poll{}, err
	}

	p, err := c.store.Create(cmd.Question, cmd.Options, creatorID, channelID)
	if err != nil {
		if models.IsValidation(err) {
			metrics.ValidationFailures.Inc()
		}
		return models.Poll{}, err
	}

	view := tally.RenderResultsView(p, false)
	var handle string
	task := c.tasks.Go(p.ID, OpPost, func(ctx context.Context) error {
		h, err := c.gateway.Post(ctx, channelID, view)
		handle = h
		return err
	})

	<-task.Done()
	if err := task.Err(); err != nil {
		if rmErr := c.store.Remove(p.ID); rmErr != nil {
			slog.Warn("rollback found no poll", "poll_id", p.ID, "error", rmErr)
		}
		c.record(ctx, p.ID, db.EventRolledBack, creatorID, nil)
		slog.Warn("poll rolled back",
			"poll_id", p.ID,
			"channel_id", channelID,
			"error", err,
		)
		return models.Poll{}, &models.DeliveryError{Op: OpPost, Err: err}
	}

	p, err = c.store.AttachMessageHandle(p.ID, handle)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to activate poll: %w", err)
	}

	metrics.PollsCreated.Inc()
	metrics.OpenPolls.Inc()
	c.record(ctx, p.ID, db.EventCreated, creatorID, nil)

	slog.Info("poll created",
		"poll_id", p.ID,
		"channel_id", channelID,
		"options", len(p.Options),
	)

	return p, nil
}

// RecordVote sets voterID's ballot, replacing any earlier one.
//
// Missing and closed polls are ignored without error. An out-of-range
// option is rejected with a ValidationError and nothing is recorded.
func (c *Controller) RecordVote(ctx context.Context, pollID, voterID string, option int) (Outcome, error) {
	_, err := c.store.Update(pollID, func(p *models.Poll) error {
		if p.Closed {
			return errClosed
		}
		if !p.ValidOption(option) {
			return models.NewValidationError("option out of range", "⚠️ That option is no longer available.")
		}
		p.Votes[voterID] = option
		return nil
	}, func(snap models.Poll) {
		c.dispatchUpdate(snap)
		summary := tally.RenderSummary(snap, voterID)
		c.tasks.Go(snap.ID+"/"+voterID, OpEphemeral, func(ctx context.Context) error {
			return c.gateway.NotifyEphemeral(ctx, snap.ChannelID, voterID, summary)
		})
	})

	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, errClosed):
		slog.Debug("vote ignored", "poll_id", pollID, "reason", err.Error())
		return Ignored, nil
	case models.IsValidation(err):
		metrics.ValidationFailures.Inc()
		return Ignored, err
	case err != nil:
		return Ignored, err
	}

	metrics.VotesRecorded.Inc()
	c.record(ctx, pollID, db.EventVoted, voterID, &option)
	return Recorded, nil
}

// ClosePoll closes a poll on its creator's request and reveals the results.
//
// Anyone else gets a private denial and the poll stays open. Missing and
// already closed polls are ignored.
func (c *Controller) ClosePoll(ctx context.Context, pollID, requesterID string) (Outcome, error) {
	snap, err := c.store.Update(pollID, func(p *models.Poll) error {
		if p.Closed {
			return errClosed
		}
		if p.CreatorID != requesterID {
			return errNotCreator
		}
		p.Closed = true
		return nil
	}, c.dispatchUpdate)

	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, errClosed):
		slog.Debug("close ignored", "poll_id", pollID, "reason", err)
		return Ignored, nil
	case errors.Is(err, errNotCreator):
		c.tasks.Go(snap.ID+"/"+requesterID, OpEphemeral, func(ctx context.Context) error {
			return c.gateway.NotifyEphemeral(ctx, snap.ChannelID, requesterID, DenialMessage)
		})
		metrics.CloseDenied.Inc()
		c.record(ctx, pollID, db.EventCloseDenied, requesterID, nil)
		return Denied, nil
	case err != nil:
		return Ignored, err
	}

	metrics.PollsClosed.Inc()
	metrics.OpenPolls.Dec()
	c.record(ctx, pollID, db.EventClosed, requesterID, nil)

	slog.Info("poll closed",
		"poll_id", pollID,
		"status", snap.Status(),
		"votes", len(snap.Votes),
	)

	return Closed, nil
}

// Handle routes a decoded action from userID
func (c *Controller) Handle(ctx context.Context, userID string, a action.Action) (Outcome, error) {
	switch a := a.(type) {
	case action.Vote:
		return c.RecordVote(ctx, a.PollID, userID, a.Option)
	case action.Close:
		return c.ClosePoll(ctx, a.PollID, userID)
	default:
		return Ignored, fmt.Errorf("unhandled action %T", a)
	}
}

// dispatchUpdate re-renders the shared message. Called under the poll lock,
// so updates for one poll are queued in commit order.
func (c *Controller) dispatchUpdate(snap models.Poll) {
	view := tally.RenderResultsView(snap, snap.Closed)
	c.tasks.Go(snap.ID, OpUpdate, func(ctx context.Context) error {
		return c.gateway.Update(ctx, snap.ChannelID, snap.MessageHandle, view)
	})
}

// record writes after a commit, so the caller going away must not drop it
func (c *Controller) record(ctx context.Context, pollID, kind, actorID string, option *int) {
	if err := c.journal.Record(context.WithoutCancel(ctx), pollID, kind, actorID, option); err != nil {
		slog.Warn("journal write failed",
			"poll_id", pollID,
			"kind", kind,
			"error", err,
		)
	}
}
