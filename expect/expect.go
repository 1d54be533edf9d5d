// Package expect provides retry-wrapped test assertions over editor queries.
// Each assertion re-samples the live editor until the expectation holds or
// the timeout elapses, then fails the test with a message naming what was
// expected and what was last observed.
package expect

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/editprobe/editprobe/editor"
	"github.com/editprobe/editprobe/poll"
)

// Option configures a single assertion.
type Option interface {
	applyOption(*config) error
}

type optionFunc func(*config) error

func (f optionFunc) applyOption(c *config) error { return f(c) }

// WithTimeout sets how long the assertion keeps retrying. Default 5s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *config) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	})
}

// WithInterval sets the re-sampling interval. Default 50ms.
func WithInterval(d time.Duration) Option {
	return optionFunc(func(c *config) error {
		if d <= 0 {
			return fmt.Errorf("interval must be positive, got %v", d)
		}
		c.interval = d
		return nil
	})
}

type config struct {
	timeout  time.Duration
	interval time.Duration
}

func newConfig(tb testing.TB, opts []Option) config {
	tb.Helper()
	cfg := config{timeout: 5 * time.Second, interval: 50 * time.Millisecond}
	for _, opt := range opts {
		if err := opt.applyOption(&cfg); err != nil {
			tb.Fatalf("invalid expect option: %v", err)
		}
	}
	return cfg
}

// LineCount asserts the document settles at exactly want lines.
func LineCount(ctx context.Context, tb testing.TB, ed *editor.Editor, want int, opts ...Option) {
	tb.Helper()
	cfg := newConfig(tb, opts)

	last := -1
	err := poll.Until(ctx, func(ctx context.Context) (bool, error) {
		n, err := ed.LineCount(ctx)
		if err != nil {
			return false, err
		}
		last = n
		return n == want, nil
	}, cfg.timeout, cfg.interval)
	if err != nil {
		tb.Fatalf("expected line count %d, last observed %d: %v", want, last, err)
	}
}

// LineInViewport asserts line becomes at least partially visible.
func LineInViewport(ctx context.Context, tb testing.TB, ed *editor.Editor, line int, opts ...Option) {
	tb.Helper()
	cfg := newConfig(tb, opts)

	var last editor.ViewportLines
	err := poll.Until(ctx, func(ctx context.Context) (bool, error) {
		v, err := ed.LinesInViewport(ctx)
		if err != nil {
			return false, err
		}
		last = v
		return v.Covers(line), nil
	}, cfg.timeout, cfg.interval)
	if err != nil {
		tb.Fatalf("expected line %d in viewport, last observed %+v: %v", line, last.Partially, err)
	}
}

// ScrollIdle asserts the scroll offset settles within the timeout.
func ScrollIdle(ctx context.Context, tb testing.TB, ed *editor.Editor, opts ...Option) {
	tb.Helper()
	cfg := newConfig(tb, opts)

	if err := ed.WaitForScrollIdle(ctx, cfg.timeout); err != nil {
		tb.Fatalf("expected scroll to go idle: %v", err)
	}
}
