// Package editor provides editor-aware queries and scroll control for a
// rich-text code editor widget rendered in a browser: which document lines
// are visible, scrolling a line to a chosen viewport position, and locating
// a line's content element after scrolling.
//
// Everything is recomputed per call from current DOM state. Virtualized
// rendering means the set of rendered lines (and their DOM order) changes on
// every scroll, so no result of one call is assumed valid by the next.
package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/editprobe/editprobe/driver"
)

// Editor exposes line-aware helpers over a driver.Surface. Methods issue
// sequential round-trips to the backend; callers wanting isolation between
// concurrent scroll requests must serialize them, as the last scroll write
// wins.
type Editor struct {
	surface driver.Surface
	profile Profile

	// Optional capabilities, probed once at construction.
	coords  driver.CoordinateResolver
	counter driver.LineCounter

	timeout   time.Duration
	interval  time.Duration
	stability int
	log       zerolog.Logger
}

type editorConfig struct {
	profile   Profile
	timeout   time.Duration
	interval  time.Duration
	stability int
	log       zerolog.Logger
}

func defaultConfig() *editorConfig {
	return &editorConfig{
		profile:   DefaultProfile(),
		timeout:   5 * time.Second,
		interval:  50 * time.Millisecond,
		stability: 3,
		log:       zerolog.Nop(),
	}
}

// New creates an Editor over the given surface. Optional capabilities
// (precise line geometry, exact line count) are resolved here, once, by
// interface assertion on the surface.
func New(surface driver.Surface, options ...Option) (*Editor, error) {
	if surface == nil {
		return nil, fmt.Errorf("surface cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	e := &Editor{
		surface:   surface,
		profile:   cfg.profile,
		timeout:   cfg.timeout,
		interval:  cfg.interval,
		stability: cfg.stability,
		log:       cfg.log,
	}
	if cr, ok := surface.(driver.CoordinateResolver); ok {
		e.coords = cr
	}
	if lc, ok := surface.(driver.LineCounter); ok {
		e.counter = lc
	}
	return e, nil
}

// Attach is the convenience constructor for the common case: default Monaco
// profile, default timeouts. It never fails; use New for explicit
// configuration.
func Attach(surface driver.Surface) *Editor {
	e, err := New(surface)
	if err != nil {
		// New only fails on nil surface or option errors; Attach takes none.
		panic(err)
	}
	return e
}

// Profile returns the DOM selectors in use.
func (e *Editor) Profile() Profile { return e.profile }

// ScrollPosition reads the scroller's current offset.
func (e *Editor) ScrollPosition(ctx context.Context) (driver.Scroll, error) {
	m, err := e.surface.Metrics(ctx, e.profile.Scroller)
	if err != nil {
		return driver.Scroll{}, fmt.Errorf("failed to read scroll position: %w", err)
	}
	return m.Scroll, nil
}
