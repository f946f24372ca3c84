// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package slackgw

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/danielhkuo/pollbot/tally"
)

// Blocks converts a poll view to Block Kit
func Blocks(v tally.View) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(mrkdwn(v.Header), nil, nil),
	}

	if v.Revealed {
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn(v.ResultsText()), nil, nil))
	} else {
		for i, row := range v.ButtonRows {
			elems := make([]slack.BlockElement, len(row))
			for j, b := range row {
				elems[j] = slack.NewButtonBlockElement(b.ActionID, b.Value, plain(truncate(b.Label, maxButtonLabel)))
			}
			blocks = append(blocks, slack.NewActionBlock(fmt.Sprintf("poll_%s_votes_%d", v.PollID, i), elems...))
		}

		if v.Close != nil {
			c := v.Close
			btn := slack.NewButtonBlockElement(c.ActionID, c.Value, plain(c.Label)).
				WithStyle(slack.StyleDanger).
				WithConfirm(slack.NewConfirmationBlockObject(
					plain(c.Confirm.Title),
					mrkdwn(c.Confirm.Text),
					plain(c.Confirm.Confirm),
					plain(c.Confirm.Deny),
				))
			blocks = append(blocks, slack.NewActionBlock(fmt.Sprintf("poll_%s_close", v.PollID), btn))
		}
	}

	if v.Footer != "" {
		blocks = append(blocks, slack.NewContextBlock("", mrkdwn(v.Footer)))
	}
	return blocks
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
