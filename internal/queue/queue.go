// Package queue serializes outbound estimator calls. External providers
// rate-limit aggressively, so all requests flow through one worker that
// enforces a minimum spacing between dispatches and retries failures with
// exponential backoff.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/captain-stacks/nutrition-gpt/internal/logger"
)

const (
	// DefaultMinInterval is the spacing between external calls.
	DefaultMinInterval = 21 * time.Second

	// DefaultMaxAttempts caps retries before a task fails terminally.
	DefaultMaxAttempts = 5

	backoffBase = 2 * time.Second
	backoffCap  = 60 * time.Second
)

// RateLimitedError signals provider throttling. RetryAfter, when set,
// overrides the computed backoff delay for the next attempt.
type RateLimitedError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rate limited: %v", e.Err)
	}
	return "rate limited"
}

func (e *RateLimitedError) Unwrap() error { return e.Err }

type task struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// Dispatcher is a FIFO of pending external calls drained by a single
// worker goroutine: at most one in-flight call, submission order
// preserved.
type Dispatcher struct {
	minInterval time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error

	mu           sync.Mutex
	tasks        chan *task
	started      bool
	lastDispatch time.Time
}

func New() *Dispatcher {
	return NewWithOptions(DefaultMinInterval, DefaultMaxAttempts)
}

func NewWithOptions(minInterval time.Duration, maxAttempts int) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Dispatcher{
		minInterval: minInterval,
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
		tasks:       make(chan *task, 64),
	}
}

// Do enqueues fn and blocks until it succeeds, fails terminally, or ctx is
// canceled.
func (d *Dispatcher) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	d.ensureWorker()
	t := &task{ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case d.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) ensureWorker() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.run()
}

func (d *Dispatcher) run() {
	for t := range d.tasks {
		t.done <- d.execute(t)
	}
}

func (d *Dispatcher) execute(t *task) error {
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err := d.waitForSlot(t.ctx); err != nil {
			return err
		}
		d.mu.Lock()
		d.lastDispatch = time.Now()
		d.mu.Unlock()

		lastErr = t.fn(t.ctx)
		if lastErr == nil {
			return nil
		}
		if t.ctx.Err() != nil {
			return t.ctx.Err()
		}
		if attempt == d.maxAttempts {
			break
		}

		delay := backoffDelay(attempt)
		var rl *RateLimitedError
		if errors.As(lastErr, &rl) && rl.RetryAfter > 0 {
			delay = rl.RetryAfter
		}
		logger.Warn("external call failed, retrying",
			"attempt", attempt, "max_attempts", d.maxAttempts, "delay", delay, "error", lastErr)
		if err := d.sleep(t.ctx, delay); err != nil {
			return err
		}
	}
	return fmt.Errorf("external call failed after %d attempts: %w", d.maxAttempts, lastErr)
}

// waitForSlot enforces the minimum spacing since the previous dispatch.
func (d *Dispatcher) waitForSlot(ctx context.Context) error {
	d.mu.Lock()
	last := d.lastDispatch
	d.mu.Unlock()
	if last.IsZero() {
		return nil
	}
	wait := d.minInterval - time.Since(last)
	if wait <= 0 {
		return nil
	}
	return d.sleep(ctx, wait)
}

func backoffDelay(attempt int) time.Duration {
	d := backoffBase << (attempt - 1)
	if d > backoffCap {
		return backoffCap
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
