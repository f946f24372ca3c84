// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package command tokenizes /poll command text into a question and options.
package command

import (
	"regexp"

	"github.com/danielhkuo/pollbot/models"
)

// A token is a straight-quoted segment, a curly-quoted segment, or a bare word
var tokenRe = regexp.MustCompile(`"([^"]+)"|“([^”]+)”|(\S+)`)

// Command is a parsed /poll invocation
type Command struct {
	Question string
	Options  []string
}

// Tokenize splits text into tokens, unwrapping quoted segments
func Tokenize(text string) []string {
	var tokens []string
	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		for _, group := range m[1:] {
			if group != "" {
				tokens = append(tokens, group)
				break
			}
		}
	}
	return tokens
}

// Parse tokenizes text and checks the option count.
// The first token is the question; the rest are options in order.
func Parse(text string) (Command, error) {
	tokens := Tokenize(text)
	if len(tokens) < 1+models.MinOptions {
		return Command{}, models.NewValidationError("too few tokens", models.UsageMessage)
	}

	cmd := Command{Question: tokens[0], Options: tokens[1:]}
	if len(cmd.Options) > models.MaxOptions {
		return Command{}, models.NewValidationError("too many options", models.TooManyOptionsMessage)
	}
	return cmd, nil
}
