// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/pollbot/models"
)

func createActive(t *testing.T, s *Store, options ...string) models.Poll {
	t.Helper()

	p, err := s.Create("Lunch?", options, "creator", "C1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p, err = s.AttachMessageHandle(p.ID, "1700000000.000100")
	if err != nil {
		t.Fatalf("AttachMessageHandle() error = %v", err)
	}
	return p
}

func TestCreate(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return at }))

	options := []string{"Pizza", "Tacos", "Sushi"}
	p, err := s.Create("Lunch?", options, "U1", "C1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if p.ID != "1" {
		t.Errorf("first counter ID = %q, want 1", p.ID)
	}
	if p.Closed {
		t.Error("new poll should be open")
	}
	if len(p.Votes) != 0 {
		t.Errorf("new poll has %d votes, want 0", len(p.Votes))
	}
	if p.MessageHandle != "" {
		t.Error("message handle should be unset before posting")
	}
	if !p.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, at)
	}
	for i := range options {
		if p.Options[i] != options[i] {
			t.Errorf("option %d = %q, want %q", i, p.Options[i], options[i])
		}
	}

	// caller's slice must not alias stored options
	options[0] = "Changed"
	got, _ := s.AttachMessageHandle(p.ID, "ts")
	if got.Options[0] != "Pizza" {
		t.Error("store aliases the caller's option slice")
	}
}

func TestCreateValidation(t *testing.T) {
	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "opt" + strconv.Itoa(i)
	}

	tests := []struct {
		name     string
		question string
		options  []string
		message  string
	}{
		{"no options", "Q", nil, models.UsageMessage},
		{"one option", "Q", []string{"A"}, models.UsageMessage},
		{"eleven options", "Q", eleven, models.TooManyOptionsMessage},
		{"blank question", "  ", []string{"A", "B"}, models.UsageMessage},
		{"blank option", "Q", []string{"A", " "}, models.BlankOptionMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			_, err := s.Create(tt.question, tt.options, "U1", "C1")

			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
			if ve.Message != tt.message {
				t.Errorf("Message = %q, want %q", ve.Message, tt.message)
			}
			if s.Len() != 0 {
				t.Errorf("store has %d polls after rejected create", s.Len())
			}
		})
	}
}

func TestCreateTenOptions(t *testing.T) {
	s := NewStore()
	ten := make([]string, 10)
	for i := range ten {
		ten[i] = strconv.Itoa(i)
	}
	if _, err := s.Create("Q", ten, "U1", "C1"); err != nil {
		t.Errorf("10 options should be accepted: %v", err)
	}
}

func TestPendingPollInvisible(t *testing.T) {
	s := NewStore()
	p, _ := s.Create("Q", []string{"A", "B"}, "U1", "C1")

	if _, err := s.Get(p.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get(pending) error = %v, want ErrNotFound", err)
	}

	_, err := s.Update(p.ID, func(p *models.Poll) error {
		p.Votes["U2"] = 0
		return nil
	}, nil)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update(pending) error = %v, want ErrNotFound", err)
	}

	if _, err := s.AttachMessageHandle(p.ID, "ts"); err != nil {
		t.Fatalf("AttachMessageHandle() error = %v", err)
	}
	got, err := s.Get(p.ID)
	if err != nil {
		t.Fatalf("Get(active) error = %v", err)
	}
	if got.MessageHandle != "ts" {
		t.Errorf("MessageHandle = %q, want ts", got.MessageHandle)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	p, _ := s.Create("Q", []string{"A", "B"}, "U1", "C1")

	if err := s.Remove(p.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after remove", s.Len())
	}
	if _, err := s.AttachMessageHandle(p.ID, "ts"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("AttachMessageHandle(removed) error = %v, want ErrNotFound", err)
	}
	if err := s.Remove(p.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	p := createActive(t, s, "A", "B")

	snap, _ := s.Get(p.ID)
	snap.Votes["intruder"] = 1
	snap.Options[0] = "Z"

	again, _ := s.Get(p.ID)
	if len(again.Votes) != 0 || again.Options[0] != "A" {
		t.Error("mutating a snapshot changed the stored poll")
	}
}

func TestUpdateFailureLeavesPollUnchanged(t *testing.T) {
	s := NewStore()
	p := createActive(t, s, "A", "B")

	boom := errors.New("boom")
	committed := false
	_, err := s.Update(p.ID, func(p *models.Poll) error {
		p.Votes["U2"] = 1
		p.Closed = true
		return boom
	}, func(models.Poll) { committed = true })

	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want boom", err)
	}
	if committed {
		t.Error("onCommit ran for a failed update")
	}

	got, _ := s.Get(p.ID)
	if got.Closed || len(got.Votes) != 0 {
		t.Errorf("failed update leaked state: %+v", got)
	}
}

func TestUpdateOnCommitSeesCommittedSnapshot(t *testing.T) {
	s := NewStore()
	p := createActive(t, s, "A", "B")

	var seen models.Poll
	snap, err := s.Update(p.ID, func(p *models.Poll) error {
		p.Votes["U2"] = 1
		return nil
	}, func(s models.Poll) { seen = s })
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if seen.Votes["U2"] != 1 || snap.Votes["U2"] != 1 {
		t.Errorf("onCommit snapshot = %+v, returned = %+v", seen, snap)
	}
}

func TestUUIDScheme(t *testing.T) {
	gen, err := NewIDGenerator(SchemeUUID)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(WithIDGenerator(gen))

	a, _ := s.Create("Q", []string{"A", "B"}, "U1", "C1")
	b, _ := s.Create("Q", []string{"A", "B"}, "U1", "C1")
	if len(a.ID) != 36 || a.ID == b.ID {
		t.Errorf("uuid IDs = %q, %q", a.ID, b.ID)
	}

	if _, err := NewIDGenerator("sequence"); err == nil {
		t.Error("unknown scheme should fail")
	}
}

func TestCreateRetriesCollidingIDs(t *testing.T) {
	ids := []string{"7", "7", "8"}
	i := 0
	s := NewStore(WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))

	a, err := s.Create("Q", []string{"A", "B"}, "U1", "C1")
	if err != nil || a.ID != "7" {
		t.Fatalf("first Create() = %q, %v", a.ID, err)
	}
	b, err := s.Create("Q", []string{"A", "B"}, "U1", "C1")
	if err != nil || b.ID != "8" {
		t.Fatalf("second Create() = %q, %v; want 8", b.ID, err)
	}
}

func TestConcurrentCreateUniqueIDs(t *testing.T) {
	s := NewStore()

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Create("Q", []string{"A", "B"}, "U1", "C1")
			if err != nil {
				t.Errorf("Create() error = %v", err)
				return
			}
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID %q", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("got %d unique IDs, want %d", len(seen), n)
	}
}

func TestConcurrentUpdatesSerialized(t *testing.T) {
	s := NewStore()
	p := createActive(t, s, "A", "B")

	const voters = 100
	var wg sync.WaitGroup
	for i := range voters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(p.ID, func(p *models.Poll) error {
				p.Votes["U"+strconv.Itoa(i)] = i % 2
				return nil
			}, nil)
			if err != nil {
				t.Errorf("Update() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := s.Get(p.ID)
	if len(got.Votes) != voters {
		t.Errorf("votes = %d, want %d (lost updates)", len(got.Votes), voters)
	}
}
