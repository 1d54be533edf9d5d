package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/editprobe/editprobe/driver"
	"github.com/editprobe/editprobe/poll"
)

// ScrollToLine scrolls the editor so the target line lands at the requested
// viewport position (AtTop unless overridden). Line numbers below 1 are
// rejected before any driver round-trip.
//
// When the backend exposes precise line geometry it is used; otherwise the
// offset is estimated from a uniform line height taken from the first
// rendered content line. The estimate is approximate for soft-wrapped or
// variable-height content.
//
// Unless WithoutIdleWait is given, the call blocks until the scroll offset
// has stopped moving before returning, tolerating browser smooth-scroll
// animation without assuming its duration.
func (e *Editor) ScrollToLine(ctx context.Context, line int, opts ...ScrollOption) error {
	if line < 1 {
		return fmt.Errorf("line number must be >= 1, got %d", line)
	}
	cfg, err := e.newScrollConfig(opts)
	if err != nil {
		return err
	}
	return e.scrollToLine(ctx, line, cfg)
}

func (e *Editor) scrollToLine(ctx context.Context, line int, cfg scrollConfig) error {
	m, err := e.surface.Metrics(ctx, e.profile.Scroller)
	if err != nil {
		return fmt.Errorf("failed to read scroller metrics: %w", err)
	}

	target, err := e.scrollTarget(ctx, line, cfg.position, m)
	if err != nil {
		return err
	}
	if target < 0 {
		target = 0
	}

	if err := e.surface.SetScroll(ctx, e.profile.Scroller, driver.Scroll{Top: target, Left: m.Scroll.Left}); err != nil {
		return fmt.Errorf("failed to scroll to line %d: %w", line, err)
	}

	if cfg.waitForIdle {
		if err := e.WaitForScrollIdle(ctx, cfg.timeout); err != nil {
			return fmt.Errorf("scroll to line %d: %w", line, err)
		}
	}
	return nil
}

// scrollTarget computes the absolute scrollTop placing line's top edge at
// fraction f of the viewport height. Bottom placement (f == 1) wants the
// line's far edge flush with the viewport bottom, hence the trailing
// line-height correction.
func (e *Editor) scrollTarget(ctx context.Context, line int, f float64, m driver.Metrics) (float64, error) {
	if e.coords != nil {
		box, ok, err := e.coords.LineBox(ctx, line)
		if err != nil {
			// Treat a failing resolver like an absent one and estimate
			// instead; only the fallback path failing is fatal.
			e.log.Debug().Err(err).Int("line", line).Msg("precise line geometry failed, estimating")
		} else if ok {
			target := m.Scroll.Top + (box.Y - m.Viewport.Y) - m.Viewport.Height*f
			if f == 1 {
				target += box.Height
			}
			e.log.Debug().Int("line", line).Float64("target", target).Msg("precise scroll target")
			return target, nil
		}
	}

	h, err := e.uniformLineHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot compute scroll target for line %d: %w", line, err)
	}
	target := float64(line-1)*h - m.Viewport.Height*f
	if f == 1 {
		target += h
	}
	e.log.Debug().Int("line", line).Float64("lineHeight", h).Float64("target", target).Msg("estimated scroll target")
	return target, nil
}

// uniformLineHeight estimates the editor's line height from the first
// rendered content line.
func (e *Editor) uniformLineHeight(ctx context.Context) (float64, error) {
	lines, err := e.surface.Query(ctx, e.profile.Line)
	if err != nil {
		return 0, fmt.Errorf("failed to query content lines: %w", err)
	}
	for _, ln := range lines {
		if ln.Box.Height > 0 {
			return ln.Box.Height, nil
		}
	}
	return 0, fmt.Errorf("no rendered content line to estimate line height from")
}

// WaitForScrollIdle blocks until the scroller's offset is unchanged across
// several consecutive samples (configured via WithIdleStability), or the
// timeout elapses.
func (e *Editor) WaitForScrollIdle(ctx context.Context, timeout time.Duration) error {
	_, err := poll.Stable(ctx, func(ctx context.Context) (driver.Scroll, error) {
		m, err := e.surface.Metrics(ctx, e.profile.Scroller)
		if err != nil {
			return driver.Scroll{}, err
		}
		return m.Scroll, nil
	}, e.stability, timeout, e.interval)
	if err != nil {
		return fmt.Errorf("scroll position did not settle: %w", err)
	}
	return nil
}
