// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollbot/action"
	"github.com/danielhkuo/pollbot/models"
)

func lunchPoll() models.Poll {
	return models.Poll{
		ID:        "1",
		Question:  "Lunch?",
		Options:   []string{"Pizza", "Tacos"},
		Votes:     map[string]int{"u1": 0, "u2": 1, "u3": 0},
		CreatorID: "creator",
		ChannelID: "C1",
	}
}

func TestRenderResultsViewRevealed(t *testing.T) {
	v := RenderResultsView(lunchPoll(), true)

	require.True(t, v.Revealed)
	require.Len(t, v.Results, 2)
	assert.Empty(t, v.ButtonRows)
	assert.Nil(t, v.Close)

	assert.Equal(t, ResultLine{Index: 0, Label: "Pizza", Count: 2, Percent: 67, Bar: RenderBar(2, 3, BarWidth)}, v.Results[0])
	assert.Equal(t, ResultLine{Index: 1, Label: "Tacos", Count: 1, Percent: 33, Bar: RenderBar(1, 3, BarWidth)}, v.Results[1])

	assert.Equal(t, "*📊 Lunch?*", v.Header)
	assert.Equal(t, "📊 Poll (closed): Lunch?", v.Fallback)
	assert.Equal(t, "🗳️ *3 votes cast* — Poll closed", v.Footer)
	assert.Contains(t, v.ResultsText(), "*Pizza* — 2 votes (67%)")
	assert.Contains(t, v.ResultsText(), "*Tacos* — 1 vote (33%)")
}

func TestRenderResultsViewOpen(t *testing.T) {
	v := RenderResultsView(lunchPoll(), false)

	require.False(t, v.Revealed)
	assert.Empty(t, v.Results)
	require.Len(t, v.ButtonRows, 1)
	require.Len(t, v.ButtonRows[0], 2)

	b := v.ButtonRows[0][1]
	assert.Equal(t, "Tacos", b.Label)
	assert.Equal(t, action.VoteActionID("1", 1), b.ActionID)
	assert.Equal(t, action.VoteValue("1", 1), b.Value)

	require.NotNil(t, v.Close)
	assert.Equal(t, action.CloseActionID("1"), v.Close.ActionID)
	assert.Equal(t, "Close this poll?", v.Close.Confirm.Title)
	assert.Equal(t, "📊 Poll: Lunch?", v.Fallback)
	assert.Equal(t, "🗳️ *3 votes cast*", v.Footer)
}

func TestRenderResultsViewButtonRows(t *testing.T) {
	tests := []struct {
		options  int
		wantRows []int
	}{
		{2, []int{2}},
		{5, []int{5}},
		{6, []int{5, 1}},
		{10, []int{5, 5}},
	}

	for _, tt := range tests {
		p := lunchPoll()
		p.Options = make([]string, tt.options)
		for i := range p.Options {
			p.Options[i] = strings.Repeat("x", i+1)
		}

		v := RenderResultsView(p, false)
		var got []int
		idx := 0
		for _, row := range v.ButtonRows {
			got = append(got, len(row))
			for _, b := range row {
				// buttons keep option order across rows
				assert.Equal(t, action.VoteValue("1", idx), b.Value)
				idx++
			}
		}
		assert.Equal(t, tt.wantRows, got, "options=%d", tt.options)
	}
}

func TestRenderResultsViewNoVotes(t *testing.T) {
	p := lunchPoll()
	p.Votes = map[string]int{}

	v := RenderResultsView(p, true)
	for _, l := range v.Results {
		assert.Equal(t, 0, l.Count)
		assert.Equal(t, 0, l.Percent)
		assert.Equal(t, strings.Repeat(EmptyGlyph, BarWidth), l.Bar)
	}
	assert.Equal(t, "🗳️ *0 votes cast* — Poll closed", v.Footer)
}

func TestRenderResultsViewDeterministic(t *testing.T) {
	p := lunchPoll()
	assert.Equal(t, RenderResultsView(p, true), RenderResultsView(p, true))
	assert.Equal(t, RenderSummary(p, "u1"), RenderSummary(p, "u1"))
}

func TestRenderSummary(t *testing.T) {
	s := RenderSummary(lunchPoll(), "u2")

	assert.True(t, strings.HasPrefix(s, "*Current results for:* Lunch?\n\n"))
	assert.Contains(t, s, "  Pizza — 2 (67%)")
	assert.Contains(t, s, "  Tacos — 1 (33%)")
	assert.Contains(t, s, "_3 total votes_")
	assert.Contains(t, s, "Your vote: *Tacos*")
}

func TestRenderSummaryNonVoter(t *testing.T) {
	p := lunchPoll()
	p.Votes = map[string]int{"u1": 0}

	s := RenderSummary(p, "someone-else")
	assert.Contains(t, s, "_1 total vote_")
	assert.NotContains(t, s, "Your vote")
}
