// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the process-wide poll registry.

A Store is created once at startup and injected; nothing is persisted, so all
polls are lost when the process exits. Tests use a fresh Store each.

	s := store.NewStore(store.WithIDGenerator(store.UUIDIDs()))

Create registers a pending poll, AttachMessageHandle activates it once its
message is posted, and Remove rolls it back if posting failed. Only active
polls are visible to Get and Update. Mutations of one poll are serialized by
that poll's lock; different polls proceed independently.
*/
package store
