package streak

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
)

// DefaultDelay is how long the calculator waits after the last trigger.
const DefaultDelay = 300 * time.Millisecond

// ErrStopped resolves futures whose run was cancelled by Stop.
var ErrStopped = errors.New("streak calculator stopped")

// ActivitySource supplies every activity timestamp: review updates and
// lesson starts.
type ActivitySource interface {
	ActivityTimestamps(ctx context.Context) ([]time.Time, error)
}

// SnapshotStore persists the last computed streak.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.Streak, error)
	Save(ctx context.Context, s models.Streak) error
}

// Future resolves when a scheduled recomputation finishes.
type Future struct {
	done   chan struct{}
	result models.Streak
	err    error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(s models.Streak, err error) {
	f.result = s
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the recomputation finishes or ctx ends.
func (f *Future) Wait(ctx context.Context) (models.Streak, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return models.Streak{}, ctx.Err()
	}
}

type pendingRun struct {
	timer  *time.Timer
	future *Future
}

// Calculator recomputes the streak after activity changes. Triggers that
// arrive within the delay of each other share a single run.
type Calculator struct {
	source ActivitySource
	store  SnapshotStore
	delay  time.Duration
	now    func() time.Time
	log    *logger.Logger

	mu      sync.Mutex
	pending *pendingRun
	last    models.Streak

	// runMu serializes recomputations so a run never overwrites a newer one.
	runMu sync.Mutex
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(c *Calculator) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithClock overrides the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewCalculator creates a Calculator reading from source and saving to store.
func NewCalculator(source ActivitySource, store SnapshotStore, opts ...Option) *Calculator {
	c := &Calculator{
		source: source,
		store:  store,
		delay:  DefaultDelay,
		now:    time.Now,
		log:    logger.Default().WithPrefix("streak"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore seeds the last-known streak from durable storage.
func (c *Calculator) Restore(ctx context.Context) error {
	s, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	c.mu.Lock()
	c.last = *s
	c.mu.Unlock()
	c.log.Debug("restored streak: current=%d, max=%d", s.Current, s.Max)
	return nil
}

// Current returns the last computed streak.
func (c *Calculator) Current() models.Streak {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Trigger schedules a recomputation after the debounce delay. A trigger that
// lands while another is still waiting pushes the run back and returns the
// same future.
func (c *Calculator) Trigger() *Future {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p := c.pending; p != nil && p.timer.Stop() {
		p.timer.Reset(c.delay)
		return p.future
	}

	p := &pendingRun{future: newFuture()}
	p.timer = time.AfterFunc(c.delay, func() { c.fire(p) })
	c.pending = p
	return p.future
}

// Stop cancels a waiting run. Its future resolves with ErrStopped.
func (c *Calculator) Stop() {
	c.mu.Lock()
	p := c.pending
	c.pending = nil
	last := c.last
	c.mu.Unlock()

	if p != nil && p.timer.Stop() {
		p.future.resolve(last, ErrStopped)
	}
}

func (c *Calculator) fire(p *pendingRun) {
	c.mu.Lock()
	if c.pending == p {
		c.pending = nil
	}
	c.mu.Unlock()

	p.future.resolve(c.Recompute(context.Background()), nil)
}

// Recompute rebuilds the streak immediately. Read failures are logged and
// leave the last-known streak in place. A call made while another run is in
// flight waits for it and then reads fresh activity.
func (c *Calculator) Recompute(ctx context.Context) models.Streak {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	timestamps, err := c.source.ActivityTimestamps(ctx)
	if err != nil {
		c.log.Warn("failed to read activity, keeping last streak: %v", err)
		return c.Current()
	}

	s := Compute(timestamps, c.now())
	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
	c.log.Debug("streak recomputed: current=%d, max=%d, today=%t", s.Current, s.Max, s.TodayInStreak)

	if err := c.store.Save(ctx, s); err != nil {
		c.log.Warn("failed to persist streak: %v", err)
	}
	return s
}
