package waiter

import (
	"context"
	"time"
)

// Clock supplies the reference time and the suspend primitive. Sleep
// returns the new reference time so tests can step a fake clock forward
// instead of blocking.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) (time.Time, error)
}

type wallClock struct{}

// NewWallClock returns the production clock: real time, real sleeps,
// interruptible by ctx.
func NewWallClock() Clock {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now().UTC()
}

func (wallClock) Sleep(ctx context.Context, d time.Duration) (time.Time, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return time.Now().UTC(), ctx.Err()
	case <-timer.C:
		return time.Now().UTC(), nil
	}
}
