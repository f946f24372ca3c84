// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package slackgw implements the messaging gateway over the Slack Web API.
//
// Poll views become Block Kit messages: a header section, one actions block
// per row of vote buttons, a danger-styled close button behind a
// confirmation dialog, and a context footer. Revealed views swap the buttons
// for a results section. Message handles are Slack message timestamps.
package slackgw
