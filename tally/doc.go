// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally turns a poll snapshot into counts, percentages, bars, and the
view model the messaging gateway relays.

# Counting

Tally counts ballots per option index; Counts zero-fills it in option order:

	counts := tally.Counts(len(p.Options), p.Votes)

The sum of all counts always equals len(p.Votes).

# Rounding

Percentage and RenderBar both round half away from zero (math.Round):

	tally.Percentage(2, 3)         // 67
	tally.RenderBar(2, 3, 16)      // 11 filled, 5 empty

A zero total yields 0% and an empty bar.

# Views

RenderResultsView builds the shared message. Open views carry vote buttons
in rows of at most five plus a close trigger; revealed views carry one
result line per option and a closed footer:

	open := tally.RenderResultsView(snap, false)
	closed := tally.RenderResultsView(snap, true)

RenderSummary builds the private summary shown to a voter after voting.

All functions are pure and deterministic for identical snapshots.
*/
package tally
