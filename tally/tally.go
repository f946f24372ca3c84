// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"strings"
)

// Bar glyphs and the default bar width used by every rendered view
const (
	FilledGlyph = "▓"
	EmptyGlyph  = "░"
	BarWidth    = 16
)

// Tally counts ballots per option index. Options nobody chose are absent.
func Tally(votes map[string]int) map[int]int {
	counts := make(map[int]int)
	for _, idx := range votes {
		counts[idx]++
	}
	return counts
}

// Counts returns one count per option, in option order, zero-filled
func Counts(numOptions int, votes map[string]int) []int {
	counts := make([]int, numOptions)
	for idx, c := range Tally(votes) {
		if idx >= 0 && idx < numOptions {
			counts[idx] = c
		}
	}
	return counts
}

// Percentage returns count/total as a whole percent, rounded half away from zero
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// filled returns the number of filled bar segments, clamped to [0, width]
func filled(count, total, width int) int {
	if total <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(float64(count) / float64(total) * float64(width)))
	if n < 0 {
		return 0
	}
	if n > width {
		return width
	}
	return n
}

// RenderBar draws a fixed-width bar proportional to count/total
func RenderBar(count, total, width int) string {
	if width <= 0 {
		return ""
	}
	n := filled(count, total, width)
	return strings.Repeat(FilledGlyph, n) + strings.Repeat(EmptyGlyph, width-n)
}
