package editor

import (
	"context"
	"fmt"

	"github.com/editprobe/editprobe/driver"
)

// LinesInViewport classifies the currently rendered document lines by
// visibility. An editor with no rendered content (e.g. container not yet
// attached) yields empty range lists, not an error.
func (e *Editor) LinesInViewport(ctx context.Context) (ViewportLines, error) {
	gutter, lines, m, err := e.snapshot(ctx)
	if err != nil {
		return ViewportLines{}, err
	}

	idx := buildGutterIndex(gutter)
	vTop := m.Viewport.Y
	vBottom := m.Viewport.Bottom()

	var fully, partially []int
	for _, ln := range lines {
		n, ok := idx.lineFor(ln.Box.Y)
		if !ok {
			continue
		}
		top, bottom := ln.Box.Y, ln.Box.Bottom()
		if bottom > vTop && top < vBottom {
			partially = append(partially, n)
			if top >= vTop && bottom <= vBottom {
				fully = append(fully, n)
			}
		}
	}

	result := ViewportLines{
		Fully:     compressRanges(fully),
		Partially: compressRanges(partially),
	}
	e.log.Debug().
		Int("rendered", len(lines)).
		Int("attributed", len(partially)).
		Interface("partially", result.Partially).
		Msg("classified viewport lines")
	return result, nil
}

// VisibleLineTexts returns the text content of every at-least-partially
// visible line, keyed by document line number.
func (e *Editor) VisibleLineTexts(ctx context.Context) (map[int]string, error) {
	gutter, lines, m, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	idx := buildGutterIndex(gutter)
	vTop := m.Viewport.Y
	vBottom := m.Viewport.Bottom()

	out := make(map[int]string)
	for _, ln := range lines {
		n, ok := idx.lineFor(ln.Box.Y)
		if !ok {
			continue
		}
		if ln.Box.Bottom() > vTop && ln.Box.Y < vBottom {
			out[n] = ln.Text
		}
	}
	return out, nil
}

// snapshot reads the three inputs every reconciliation pass needs. The reads
// are sequential round-trips against a live page, so the snapshot is only as
// consistent as the page is quiet; callers that just scrolled should wait
// for idle first.
func (e *Editor) snapshot(ctx context.Context) (gutter, lines []driver.Node, m driver.Metrics, err error) {
	if gutter, err = e.surface.Query(ctx, e.profile.Gutter); err != nil {
		return nil, nil, driver.Metrics{}, fmt.Errorf("failed to query gutter annotations: %w", err)
	}
	if lines, err = e.surface.Query(ctx, e.profile.Line); err != nil {
		return nil, nil, driver.Metrics{}, fmt.Errorf("failed to query content lines: %w", err)
	}
	if m, err = e.surface.Metrics(ctx, e.profile.Scroller); err != nil {
		return nil, nil, driver.Metrics{}, fmt.Errorf("failed to read scroller metrics: %w", err)
	}
	return gutter, lines, m, nil
}
