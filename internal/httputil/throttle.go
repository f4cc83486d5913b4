// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces a minimum interval between requests to one API. It is
// safe for concurrent use: goroutines sharing a Throttle are admitted one at
// a time, so the aggregate rate never exceeds one request per interval.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewThrottle returns a Throttle admitting one request per interval. The
// first request is admitted immediately. An interval of zero or less
// disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
	}
}

// Wait blocks until the next request may be sent or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Interval returns the configured minimum spacing between requests.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
