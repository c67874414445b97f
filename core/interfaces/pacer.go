// ABOUTME: Pacer interface spacing out calls to rate limited upstream APIs
// ABOUTME: Implementations are process wide so concurrent requests share one budget

package interfaces

import "context"

// Pacer enforces a minimum interval between successive upstream calls
type Pacer interface {
	// Wait blocks until the next call may proceed or ctx is done
	Wait(ctx context.Context) error
}

// PacerFunc adapts a function to the Pacer interface
type PacerFunc func(ctx context.Context) error

// Wait calls f(ctx)
func (f PacerFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

// NoopPacer never waits
var NoopPacer Pacer = PacerFunc(func(ctx context.Context) error { return ctx.Err() })
