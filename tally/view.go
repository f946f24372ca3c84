// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/pollbot/action"
	"github.com/danielhkuo/pollbot/models"
)

// MaxButtonsPerRow is the gateway's limit on triggers in one action group
const MaxButtonsPerRow = 5

// Button is a vote or close trigger
type Button struct {
	Label    string
	ActionID string
	Value    string
}

// Confirm is the dialog shown before a trigger fires
type Confirm struct {
	Title   string
	Text    string
	Confirm string
	Deny    string
}

// CloseTrigger is the creator-only close button
type CloseTrigger struct {
	Button
	Confirm Confirm
}

// ResultLine is one option's revealed result
type ResultLine struct {
	Index   int
	Label   string
	Count   int
	Percent int
	Bar     string
}

// View is the gateway-neutral render of a poll.
// Open views carry ButtonRows and Close; revealed views carry Results.
type View struct {
	PollID     string
	Header     string
	Fallback   string
	Revealed   bool
	ButtonRows [][]Button
	Close      *CloseTrigger
	Results    []ResultLine
	Footer     string
}

// RenderResultsView renders the shared poll message.
// With revealAll the per-option results replace the vote buttons.
func RenderResultsView(p models.Poll, revealAll bool) View {
	total := len(p.Votes)
	v := View{
		PollID:   p.ID,
		Header:   fmt.Sprintf("*📊 %s*", p.Question),
		Revealed: revealAll,
	}

	if revealAll {
		v.Fallback = "📊 Poll (closed): " + p.Question
		v.Results = resultLines(p)
		v.Footer = fmt.Sprintf("🗳️ *%s cast* — Poll closed", voteCount(total))
		return v
	}

	v.Fallback = "📊 Poll: " + p.Question
	var row []Button
	for i, opt := range p.Options {
		row = append(row, Button{
			Label:    opt,
			ActionID: action.VoteActionID(p.ID, i),
			Value:    action.VoteValue(p.ID, i),
		})
		if len(row) == MaxButtonsPerRow {
			v.ButtonRows = append(v.ButtonRows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		v.ButtonRows = append(v.ButtonRows, row)
	}

	v.Footer = fmt.Sprintf("🗳️ *%s cast*", voteCount(total))
	v.Close = &CloseTrigger{
		Button: Button{
			Label:    "🔒 Close Poll",
			ActionID: action.CloseActionID(p.ID),
			Value:    action.CloseValue(p.ID),
		},
		Confirm: Confirm{
			Title:   "Close this poll?",
			Text:    "This will reveal results to everyone. This cannot be undone.",
			Confirm: "Close It",
			Deny:    "Cancel",
		},
	}
	return v
}

// Markdown formats a result line for the shared message
func (l ResultLine) Markdown() string {
	return fmt.Sprintf("%s  *%s* — %s (%d%%)", l.Bar, l.Label, voteCount(l.Count), l.Percent)
}

// Plain formats a result line for the private summary
func (l ResultLine) Plain() string {
	return fmt.Sprintf("%s  %s — %s (%d%%)", l.Bar, l.Label, humanize.Comma(int64(l.Count)), l.Percent)
}

// ResultsText joins the revealed lines of v
func (v View) ResultsText() string {
	lines := make([]string, len(v.Results))
	for i, l := range v.Results {
		lines[i] = l.Markdown()
	}
	return strings.Join(lines, "\n")
}

// RenderSummary renders the private results summary sent to a voter.
// It reuses the revealed view so both renders always agree.
func RenderSummary(p models.Poll, voterID string) string {
	v := RenderResultsView(p, true)

	var b strings.Builder
	fmt.Fprintf(&b, "*Current results for:* %s\n\n", p.Question)
	for i, l := range v.Results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l.Plain())
	}
	fmt.Fprintf(&b, "\n\n_%s total %s_", humanize.Comma(int64(len(p.Votes))), english.PluralWord(len(p.Votes), "vote", ""))

	if idx, ok := p.Votes[voterID]; ok && p.ValidOption(idx) {
		fmt.Fprintf(&b, "\nYour vote: *%s*", p.Options[idx])
	}
	return b.String()
}

func resultLines(p models.Poll) []ResultLine {
	total := len(p.Votes)
	counts := Counts(len(p.Options), p.Votes)

	lines := make([]ResultLine, len(p.Options))
	for i, opt := range p.Options {
		lines[i] = ResultLine{
			Index:   i,
			Label:   opt,
			Count:   counts[i],
			Percent: Percentage(counts[i], total),
			Bar:     RenderBar(counts[i], total, BarWidth),
		}
	}
	return lines
}

// voteCount renders "1 vote", "3 votes", "1,204 votes"
func voteCount(n int) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, "vote", "")
}
