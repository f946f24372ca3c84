// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/danielhkuo/pollbot/action"
	"github.com/danielhkuo/pollbot/middleware"
	"github.com/danielhkuo/pollbot/models"
	"github.com/danielhkuo/pollbot/notify"
	"github.com/danielhkuo/pollbot/polls"
)

const genericFailure = "⚠️ Something went wrong creating the poll. Please try again."

// Dispatcher ops for work started by the slash command
const (
	opCommand = "command"
	opRespond = "respond"
)

type SlackHandler struct {
	ctrl  *polls.Controller
	tasks *notify.Dispatcher
}

func NewSlackHandler(ctrl *polls.Controller, tasks *notify.Dispatcher) *SlackHandler {
	return &SlackHandler{ctrl: ctrl, tasks: tasks}
}

// Command handles POST /slack/commands.
//
// Bad commands get their ephemeral reply inline. Valid ones are acked at
// once and the poll is posted in the background, since Slack drops a
// command that is not acked within three seconds. A failed post is reported
// through the command's response_url.
func (h *SlackHandler) Command(w http.ResponseWriter, r *http.Request) {
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid slash command")
		return
	}

	if err := h.ctrl.CheckCommand(cmd.Text); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			slog.Info("poll command rejected", "user_id", cmd.UserID, "reason", ve.Reason)
			ephemeral(w, ve.Message)
			return
		}
		slog.Error("failed to check poll command", "channel_id", cmd.ChannelID, "error", err)
		ephemeral(w, genericFailure)
		return
	}

	h.tasks.Go("", opCommand, func(ctx context.Context) error {
		p, err := h.ctrl.CreatePoll(ctx, cmd.Text, cmd.UserID, cmd.ChannelID)
		if err != nil {
			h.replyFailure(cmd, err)
			return nil
		}
		slog.Debug("poll command handled", "poll_id", p.ID, "user_id", cmd.UserID)
		return nil
	})

	// The poll itself is the visible reply
	w.WriteHeader(http.StatusOK)
}

// replyFailure tells the requester why their poll did not appear
func (h *SlackHandler) replyFailure(cmd slack.SlashCommand, err error) {
	var ve *models.ValidationError
	var de *models.DeliveryError
	var text string
	switch {
	case errors.As(err, &ve):
		text = ve.Message
	case errors.As(err, &de):
		text = h.ctrl.InviteMessage()
	default:
		slog.Error("failed to create poll", "channel_id", cmd.ChannelID, "error", err)
		text = genericFailure
	}

	if cmd.ResponseURL == "" {
		slog.Warn("no response_url for failure reply", "user_id", cmd.UserID, "channel_id", cmd.ChannelID)
		return
	}

	h.tasks.Go("", opRespond, func(ctx context.Context) error {
		return slack.PostWebhookContext(ctx, cmd.ResponseURL, &slack.WebhookMessage{
			ResponseType: slack.ResponseTypeEphemeral,
			Text:         text,
		})
	})
}

// Interactions handles POST /slack/interactions
func (h *SlackHandler) Interactions(w http.ResponseWriter, r *http.Request) {
	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &cb); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if cb.Type != slack.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, ba := range cb.ActionCallback.BlockActions {
		a, err := action.Decode(ba.ActionID, ba.Value)
		if err != nil {
			// stale or foreign buttons are acknowledged and dropped
			slog.Debug("action ignored", "action_id", ba.ActionID, "error", err)
			continue
		}

		outcome, err := h.ctrl.Handle(r.Context(), cb.User.ID, a)
		if err != nil {
			slog.Warn("action rejected",
				"poll_id", a.Target(),
				"user_id", cb.User.ID,
				"error", err,
			)
			continue
		}
		slog.Debug("action handled",
			"poll_id", a.Target(),
			"user_id", cb.User.ID,
			"outcome", outcome.String(),
		)
	}

	w.WriteHeader(http.StatusOK)
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pollbot is running"))
}

func ephemeral(w http.ResponseWriter, text string) {
	middleware.JSONResponse(w, http.StatusOK, slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	})
}
