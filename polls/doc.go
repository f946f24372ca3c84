// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls is the poll lifecycle controller.

A poll has two states, Open and Closed. Closed is terminal.

# Creating

CreatePoll parses the raw command text, stores a pending poll and posts its
open view through the Gateway. The post runs as a notify.Task and the
controller waits on it: on success the returned message handle activates the
poll, on failure the poll is removed and a *models.DeliveryError comes back.
Handlers show InviteMessage in that case.

# Voting and Closing

RecordVote and ClosePoll commit to the store first and only then queue
gateway calls. Re-renders of the shared message are keyed by poll ID so they
are delivered in commit order. A failed delivery is logged and counted; the
stored vote stands.

Requests against a missing or closed poll return Ignored with a nil error.
A close from anyone but the creator returns Denied and sends DenialMessage
to the requester only.

	outcome, err := ctrl.Handle(ctx, userID, action.Vote{PollID: "7", Option: 1})
*/
package polls
