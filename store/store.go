// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/pollbot/models"
)

// maxIDAttempts bounds retries when a generator returns an ID already in use
const maxIDAttempts = 8

var errIDExhausted = errors.New("could not allocate a unique poll ID")

// entry guards one poll. Every read or write of poll goes through mu.
type entry struct {
	mu      sync.Mutex
	poll    models.Poll
	active  bool // set once the poll's message has been posted
	removed bool
}

// Store is the in-process registry of polls.
//
// The registry lock only guards the map; each poll has its own lock, so
// operations on different polls never wait on each other.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextID  IDGenerator
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides the default counter IDs
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.nextID = gen }
}

// WithClock overrides time.Now for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		nextID:  CounterIDs(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks a question and option list before anything is stored
func Validate(question string, options []string) error {
	if strings.TrimSpace(question) == "" {
		return models.NewValidationError("empty question", models.UsageMessage)
	}
	if len(options) < models.MinOptions {
		return models.NewValidationError("too few options", models.UsageMessage)
	}
	if len(options) > models.MaxOptions {
		return models.NewValidationError("too many options", models.TooManyOptionsMessage)
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			// Slack rejects buttons with blank labels
			return models.NewValidationError("blank option", models.BlankOptionMessage)
		}
	}
	return nil
}

// Create registers a new open poll and returns a copy of it.
//
// The poll stays pending, invisible to Get and Update, until
// AttachMessageHandle activates it.
func (s *Store) Create(question string, options []string, creatorID, channelID string) (models.Poll, error) {
	if err := Validate(question, options); err != nil {
		return models.Poll{}, err
	}

	e := &entry{poll: models.Poll{
		Question:  question,
		Options:   append([]string(nil), options...),
		Votes:     make(map[string]int),
		CreatorID: creatorID,
		ChannelID: channelID,
		CreatedAt: s.now(),
	}}

	s.mu.Lock()
	defer s.mu.Unlock()

	for range maxIDAttempts {
		id := s.nextID()
		if _, taken := s.entries[id]; taken {
			continue
		}
		e.poll.ID = id
		s.entries[id] = e
		return e.poll.Clone(), nil
	}
	return models.Poll{}, errIDExhausted
}

// lookup returns the locked entry for id, or nil.
// Callers must unlock e.mu.
func (s *Store) lookup(id string, includePending bool) *entry {
	s.mu.RLock()
	e := s.entries[id]
	s.mu.RUnlock()
	if e == nil {
		return nil
	}

	e.mu.Lock()
	if e.removed || (!e.active && !includePending) {
		e.mu.Unlock()
		return nil
	}
	return e
}

// Get returns a copy of an active poll
func (s *Store) Get(id string) (models.Poll, error) {
	e := s.lookup(id, false)
	if e == nil {
		return models.Poll{}, models.ErrNotFound
	}
	defer e.mu.Unlock()
	return e.poll.Clone(), nil
}

// AttachMessageHandle records where the poll was posted and makes it votable
func (s *Store) AttachMessageHandle(id, handle string) (models.Poll, error) {
	e := s.lookup(id, true)
	if e == nil {
		return models.Poll{}, models.ErrNotFound
	}
	defer e.mu.Unlock()

	e.poll.MessageHandle = handle
	e.active = true
	return e.poll.Clone(), nil
}

// Remove drops a poll. It is only used to roll back a failed initial post.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return models.ErrNotFound
	}

	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
	return nil
}

// Update applies fn to an active poll under that poll's lock.
//
// fn works on a copy; the copy replaces the stored poll only if fn returns
// nil, so a failed update leaves nothing behind. onCommit, if set, runs with
// the committed snapshot while the lock is still held, so calls it makes are
// ordered the same way the commits were. It must not block.
func (s *Store) Update(id string, fn func(p *models.Poll) error, onCommit func(snap models.Poll)) (models.Poll, error) {
	e := s.lookup(id, false)
	if e == nil {
		return models.Poll{}, models.ErrNotFound
	}
	defer e.mu.Unlock()

	work := e.poll.Clone()
	if err := fn(&work); err != nil {
		return e.poll.Clone(), err
	}
	e.poll = work

	snap := e.poll.Clone()
	if onCommit != nil {
		onCommit(snap)
	}
	return snap, nil
}

// Len returns the number of registered polls, pending ones included
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
