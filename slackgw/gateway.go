// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package slackgw

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"github.com/danielhkuo/pollbot/tally"
)

// maxButtonLabel is Slack's limit on plain_text button labels
const maxButtonLabel = 75

// Gateway posts poll renders through the Slack Web API
type Gateway struct {
	api *slack.Client
}

// New returns a gateway authenticated with a bot token.
// apiURL overrides the Web API base when non-empty.
func New(token, apiURL string) *Gateway {
	var opts []slack.Option
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Gateway{api: slack.New(token, opts...)}
}

// Post joins the channel if it can, then posts the view.
// It returns the message timestamp, which Slack uses as the message handle.
func (g *Gateway) Post(ctx context.Context, channelID string, view tally.View) (string, error) {
	// private channels and DMs cannot be joined; posting still works if the bot was invited
	if _, _, _, err := g.api.JoinConversationContext(ctx, channelID); err != nil {
		slog.Debug("channel join skipped", "channel_id", channelID, "error", err)
	}

	_, ts, err := g.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(view.Fallback, false),
		slack.MsgOptionBlocks(Blocks(view)...),
	)
	if err != nil {
		return "", fmt.Errorf("chat.postMessage: %w", err)
	}
	return ts, nil
}

// Update replaces the poll message identified by handle
func (g *Gateway) Update(ctx context.Context, channelID, handle string, view tally.View) error {
	_, _, _, err := g.api.UpdateMessageContext(ctx, channelID, handle,
		slack.MsgOptionText(view.Fallback, false),
		slack.MsgOptionBlocks(Blocks(view)...),
	)
	if err != nil {
		return fmt.Errorf("chat.update: %w", err)
	}
	return nil
}

// NotifyEphemeral sends text visible only to userID
func (g *Gateway) NotifyEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := g.api.PostEphemeralContext(ctx, channelID, userID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("chat.postEphemeral: %w", err)
	}
	return nil
}
