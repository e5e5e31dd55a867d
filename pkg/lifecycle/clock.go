package lifecycle

import (
	"context"
	"fmt"
	"time"
)

// Clock is the time source of the poll loop
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep waits for d, returning early with the context error when ctx is done
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("poll interrupted: %w", ctx.Err())
	}
}
