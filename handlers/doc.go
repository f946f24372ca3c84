// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers Slack calls.

# Handler Types

SlackHandler wraps the poll lifecycle controller:

	slackHandler := handlers.NewSlackHandler(ctrl, tasks)

Both Slack endpoints expect the router to have verified the request
signature already (see middleware.VerifySlack).

# Slash Command

	POST /slack/commands → Command

The command text is checked first. Rejected commands get an ephemeral JSON
reply only the requester sees: the usage message, the option limit or the
blank option notice. Valid commands are acked with an empty 200 straight
away and the poll is created on the dispatcher, so a slow chat.postMessage
never runs past Slack's three second deadline. If the post fails the invite
instruction goes to the command's response_url as an ephemeral message.

# Interactivity

	POST /slack/interactions → Interactions

Button presses arrive as a block_actions payload. Each action is decoded
into action.Vote or action.Close and routed through Controller.Handle.
Undecodable actions and requests against missing or closed polls are
acknowledged with 200 and otherwise ignored, so old buttons never surface
an error.

# Health

	GET /health → {"ok":true}
	GET /       → banner
*/
package handlers
