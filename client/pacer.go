package client

import (
	"context"
	"time"
)

// pacer spaces the successive backend calls one operation issues. Scope is a
// single operation invocation; concurrent operations each carry their own
// pacer and do not throttle each other.
type pacer struct {
	interval time.Duration
	last     time.Time
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval}
}

// wait blocks until the interval since the previous call has elapsed. The
// first call never blocks. The pacer itself never fails; the only error out
// of wait is the context's own cancellation.
func (p *pacer) wait(ctx context.Context) error {
	if !p.last.IsZero() && p.interval > 0 {
		if delay := p.interval - time.Since(p.last); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	p.last = time.Now()
	return nil
}
