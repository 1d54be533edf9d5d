package editor

import (
	"context"
	"fmt"
	"math"

	"github.com/editprobe/editprobe/driver"
	"github.com/editprobe/editprobe/poll"
)

// ScrollToLineAndLocate scrolls the target line into view and returns a
// snapshot of its content-line element.
//
// Virtualized rendering means "line N" is not the DOM's (N-1)th line
// element, so after scrolling the line is found by correlating the target
// line's gutter annotation position with content-line positions. The call
// waits, bounded by the timeout, first for the gutter annotation to appear
// and then for the resolved element to report itself visible; a freshly
// scrolled-to element can exist in the DOM a frame before it is painted.
func (e *Editor) ScrollToLineAndLocate(ctx context.Context, line int, opts ...ScrollOption) (driver.Node, error) {
	if line < 1 {
		return driver.Node{}, fmt.Errorf("line number must be >= 1, got %d", line)
	}
	cfg, err := e.newScrollConfig(opts)
	if err != nil {
		return driver.Node{}, err
	}

	if err := e.scrollToLine(ctx, line, cfg); err != nil {
		return driver.Node{}, err
	}

	// Synchronization point: layout has caught up with the scroll once the
	// target's gutter annotation is rendered and visible.
	annotation, err := poll.For(ctx, e.gutterEntry(line), func(n *driver.Node) bool {
		return n != nil && n.Visible
	}, cfg.timeout, e.interval)
	if err != nil {
		return driver.Node{}, fmt.Errorf("gutter annotation for line %d never became visible: %w", line, err)
	}

	node, err := poll.For(ctx, e.contentLineAt(annotation.Box.Y), func(n *driver.Node) bool {
		return n != nil && n.Visible
	}, cfg.timeout, e.interval)
	if err != nil {
		return driver.Node{}, fmt.Errorf("no visible content line found for line %d: %w", line, err)
	}
	return *node, nil
}

// gutterEntry returns a getter resolving the rendered, non-placeholder
// gutter annotation whose text is exactly the target line number. Nil when
// absent.
func (e *Editor) gutterEntry(line int) func(context.Context) (*driver.Node, error) {
	return func(ctx context.Context) (*driver.Node, error) {
		gutter, err := e.surface.Query(ctx, e.profile.Gutter)
		if err != nil {
			return nil, fmt.Errorf("failed to query gutter annotations: %w", err)
		}
		for i := range gutter {
			g := &gutter[i]
			if g.Box.Height == 0 || g.Box.Y < gutterOffscreenMin {
				continue
			}
			if n, ok := parseLineNumber(g.Text); ok && n == line {
				return g, nil
			}
		}
		return nil, nil
	}
}

// contentLineAt returns a getter resolving the content line whose top sits
// within tolerance of the given gutter top. Nil when absent.
func (e *Editor) contentLineAt(gutterTop float64) func(context.Context) (*driver.Node, error) {
	return func(ctx context.Context) (*driver.Node, error) {
		lines, err := e.surface.Query(ctx, e.profile.Line)
		if err != nil {
			return nil, fmt.Errorf("failed to query content lines: %w", err)
		}
		var best *driver.Node
		bestDist := math.MaxFloat64
		for i := range lines {
			d := math.Abs(lines[i].Box.Y - gutterTop)
			if d <= positionTolerance && d < bestDist {
				best = &lines[i]
				bestDist = d
			}
		}
		return best, nil
	}
}
