package questions

import (
	"context"
	"sync"
	"time"
)

// Throttle enforces a minimum spacing between outbound generation calls.
// It is shared process-wide and deliberately serializes all callers: a single
// backpressure valve protecting the upstream rate limit, not a per-account
// limiter.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// Injectable for deterministic tests.
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewThrottle creates a Throttle with the given minimum call spacing.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the minimum interval since the previous call has passed,
// or the context is cancelled. The mutex is held across the sleep so that
// concurrent callers queue rather than stampede.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if delay := t.interval - t.now().Sub(t.last); delay > 0 {
		if err := t.sleep(ctx, delay); err != nil {
			return err
		}
	}
	t.last = t.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
