// ABOUTME: Pacers spacing out upstream calls with golang.org/x/time/rate
// ABOUTME: One limiter per upstream API, shared by every request in the process

package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Default intervals between successive upstream calls
const (
	DefaultSearchInterval    = 1200 * time.Millisecond
	DefaultSummaryInterval   = 500 * time.Millisecond
	DefaultTranslateInterval = 300 * time.Millisecond
)

// Pacer implements interfaces.Pacer as a minimum-interval gate with burst 1.
// The first call passes immediately.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer; a non-positive interval never waits
func NewPacer(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the interval since the previous call has elapsed
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
