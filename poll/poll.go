// Package poll provides polling combinators for waiting on asynchronous
// browser state with consistent timeouts and error handling.
//
// This eliminates hardcoded sleep values scattered throughout callers,
// providing a unified approach to waiting for layout and scroll changes.
package poll

import (
	"context"
	"fmt"
	"time"
)

// Until repeatedly evaluates cond until it reports true or timeout expires.
// Returns an error if timeout expires before cond becomes true, or cond's
// error as soon as one occurs.
func Until(ctx context.Context, cond func(context.Context) (bool, error), timeout, interval time.Duration) error {
	start := time.Now()
	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if time.Since(start) >= timeout {
			return fmt.Errorf("timeout waiting for condition (threshold: %v)", timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
			// Continue polling
		}
	}
}

// For waits until the getter returns a value that satisfies the predicate,
// or timeout expires.
//
// Example usage:
//
//	node, err := poll.For(ctx, ed.gutterEntry(42),
//		func(n *driver.Node) bool { return n != nil && n.Visible },
//		5*time.Second,
//		50*time.Millisecond)
func For[T any](ctx context.Context, getter func(context.Context) (T, error), predicate func(T) bool, timeout, interval time.Duration) (T, error) {
	start := time.Now()
	for {
		state, err := getter(ctx)
		if err != nil {
			var zero T
			return zero, err
		}

		if predicate(state) {
			return state, nil
		}

		if time.Since(start) >= timeout {
			var zero T
			return zero, fmt.Errorf("timeout waiting for target state (type %T, threshold: %v)", *new(T), timeout)
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-time.After(interval):
			// Continue polling
		}
	}
}

// Stable samples a value until it has been identical for need consecutive
// samples, then returns it. A single unchanged sample is not enough to call
// an animated value settled; requiring several avoids false-idle detection
// mid-animation.
func Stable[T comparable](ctx context.Context, sample func(context.Context) (T, error), need int, timeout, interval time.Duration) (T, error) {
	var zero T
	if need < 2 {
		return zero, fmt.Errorf("stability count must be >= 2, got %d", need)
	}

	start := time.Now()
	var last T
	streak := 0
	for {
		v, err := sample(ctx)
		if err != nil {
			return zero, err
		}

		if streak > 0 && v == last {
			streak++
		} else {
			streak = 1
		}
		last = v

		if streak >= need {
			return v, nil
		}

		if time.Since(start) >= timeout {
			return zero, fmt.Errorf("timeout waiting for value to stabilize (threshold: %v, needed %d consecutive samples, best streak %d)", timeout, need, streak)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(interval):
			// Continue sampling
		}
	}
}
