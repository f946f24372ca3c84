// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify runs messaging gateway calls in the background.
//
// Every call becomes a Task whose outcome is kept as a value. Tasks that
// share a key run one after another in submission order; tasks with
// different keys run in parallel.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbot/metrics"
)

// DefaultTimeout bounds a single gateway call
const DefaultTimeout = 10 * time.Second

// Task is the future for one gateway call
type Task struct {
	ID  string
	Key string
	Op  string

	done chan struct{}
	err  error
}

// Done is closed once the call has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the call's error. Only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the call finishes or ctx ends
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatcher starts and tracks tasks
type Dispatcher struct {
	base    context.Context
	timeout time.Duration

	mu    sync.Mutex
	tails map[string]*Task
	wg    sync.WaitGroup
}

// NewDispatcher returns a dispatcher whose calls each get timeout.
// Calls run under a background context so they outlive the request that
// triggered them.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		base:    context.Background(),
		timeout: timeout,
		tails:   make(map[string]*Task),
	}
}

// Go schedules fn. If key is non-empty, fn starts only after the previous
// task with the same key has finished.
func (d *Dispatcher) Go(key, op string, fn func(ctx context.Context) error) *Task {
	t := &Task{
		ID:   uuid.NewString(),
		Key:  key,
		Op:   op,
		done: make(chan struct{}),
	}

	var prev *Task
	if key != "" {
		d.mu.Lock()
		prev = d.tails[key]
		d.tails[key] = t
		d.mu.Unlock()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if prev != nil {
			<-prev.done
		}
		t.err = d.run(t, fn)
		close(t.done)

		if key != "" {
			d.mu.Lock()
			if d.tails[key] == t {
				delete(d.tails, key)
			}
			d.mu.Unlock()
		}
	}()
	return t
}

func (d *Dispatcher) run(t *Task, fn func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(d.base, d.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s delivery: %v", t.Op, r)
		}
		metrics.DeliveryLatency.WithLabelValues(t.Op).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.DeliveryFailures.WithLabelValues(t.Op).Inc()
			slog.Error("delivery failed",
				"op", t.Op,
				"key", t.Key,
				"task_id", t.ID,
				"error", err,
			)
		}
	}()

	return fn(ctx)
}

// Drain waits for every scheduled task, or until ctx ends
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
