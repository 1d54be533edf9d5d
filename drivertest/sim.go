// Package drivertest provides an in-memory driver.Surface simulating a
// virtualized code editor: only lines near the viewport are rendered, anchor
// rows stay alive far from it, the gutter contains width-measurement
// placeholder annotations, and scrolls can settle over several animation
// samples. It exists so editor helpers can be exercised without a browser,
// and is exported for consumers who want the same.
package drivertest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/editprobe/editprobe/driver"
	"github.com/editprobe/editprobe/editor"
)

// Config shapes the simulated document and viewport. Zero values take the
// documented defaults.
type Config struct {
	// Lines is the document length. Default 100.
	Lines int
	// LineHeight is the uniform rendered height of a line. Default 19.
	LineHeight float64
	// ViewportTop is the screen y of the scroller's top edge. Default 10.
	ViewportTop float64
	// ViewportHeight is the scroller's client height. Default 380.
	ViewportHeight float64
	// ViewportWidth is the scroller's client width. Default 800.
	ViewportWidth float64
	// Overscan is how many lines beyond the viewport are materialized on
	// each side, as windowed renderers do. Default 5.
	Overscan int
	// Anchors lists lines kept rendered regardless of scroll position.
	// Default is line 1. Set to a non-nil empty slice for none.
	Anchors []int
	// Jitter is a sub-pixel offset applied to content-line tops relative to
	// their gutter annotations, mimicking browser layout noise. Default 0.3.
	Jitter float64
	// Precise exposes exact per-line geometry via driver.CoordinateResolver.
	Precise bool
	// ExactCount exposes the model line count via driver.LineCounter.
	ExactCount bool
	// Hidden lists collapsed line ranges {first, last}, as code folding
	// produces: hidden lines are not rendered and take no vertical space,
	// so visible lines around a fold are adjacent on screen but not in the
	// document.
	Hidden [][2]int
	// SettleSteps animates scrolls: the reported offset reaches the target
	// only after this many Metrics samples. 0 scrolls instantly.
	SettleSteps int
	// NoPlaceholders suppresses the gutter measurement placeholders
	// (one zero-height, one parked far off-screen) emitted by default.
	NoPlaceholders bool
}

func (c *Config) fillDefaults() {
	if c.Lines == 0 {
		c.Lines = 100
	}
	if c.LineHeight == 0 {
		c.LineHeight = 19
	}
	if c.ViewportTop == 0 {
		c.ViewportTop = 10
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = 380
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = 800
	}
	if c.Overscan == 0 {
		c.Overscan = 5
	}
	if c.Anchors == nil {
		c.Anchors = []int{1}
	}
	if c.Jitter == 0 {
		c.Jitter = 0.3
	}
}

// Sim is a simulated editor surface. It is safe for concurrent use, though
// concurrent scrolls race exactly as they would against a real page.
type Sim struct {
	mu  sync.Mutex
	cfg Config
	id  string

	scrollTop  float64
	scrollLeft float64

	// Scroll animation state; Metrics samples drive the clock.
	animFrom  float64
	animTo    float64
	remaining int
}

// New creates a Sim. The zero Config is a 100-line document in a 380px
// viewport.
func New(cfg Config) *Sim {
	cfg.fillDefaults()
	return &Sim{cfg: cfg, id: uuid.NewString()}
}

// ScrollTop reports the current (possibly mid-animation) offset.
func (s *Sim) ScrollTop() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollTop
}

// Query implements driver.Surface. Selectors are matched against the default
// Monaco profile; anything else yields no nodes.
func (s *Sim) Query(ctx context.Context, selector string) ([]driver.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := editor.DefaultProfile()
	switch selector {
	case p.Gutter:
		return s.gutterNodes(), nil
	case p.Line:
		return s.lineNodes(), nil
	default:
		return nil, nil
	}
}

// Metrics implements driver.Surface. Each call advances any in-flight scroll
// animation by one sample.
func (s *Sim) Metrics(ctx context.Context, selector string) (driver.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return driver.Metrics{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if selector != editor.DefaultProfile().Scroller {
		return driver.Metrics{}, fmt.Errorf("no scrollable container matches %q", selector)
	}

	if s.remaining > 0 {
		s.remaining--
		frac := float64(s.cfg.SettleSteps-s.remaining) / float64(s.cfg.SettleSteps)
		s.scrollTop = s.animFrom + (s.animTo-s.animFrom)*frac
	}

	return driver.Metrics{
		Viewport: driver.Box{
			X:      0,
			Y:      s.cfg.ViewportTop,
			Width:  s.cfg.ViewportWidth,
			Height: s.cfg.ViewportHeight,
		},
		Scroll:        driver.Scroll{Top: s.scrollTop, Left: s.scrollLeft},
		ContentHeight: float64(s.visibleLineCount()) * s.cfg.LineHeight,
	}, nil
}

// SetScroll implements driver.Surface. Targets are clamped to the scrollable
// range, as a browser would.
func (s *Sim) SetScroll(ctx context.Context, selector string, sc driver.Scroll) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if selector != editor.DefaultProfile().Scroller {
		return fmt.Errorf("no scrollable container matches %q", selector)
	}

	max := float64(s.visibleLineCount())*s.cfg.LineHeight - s.cfg.ViewportHeight
	if max < 0 {
		max = 0
	}
	top := sc.Top
	if top < 0 {
		top = 0
	}
	if top > max {
		top = max
	}

	s.scrollLeft = sc.Left
	if s.cfg.SettleSteps > 0 {
		s.animFrom = s.scrollTop
		s.animTo = top
		s.remaining = s.cfg.SettleSteps
	} else {
		s.scrollTop = top
	}
	return nil
}

// LineBox implements driver.CoordinateResolver when Config.Precise is set;
// otherwise it reports the capability as unavailable.
func (s *Sim) LineBox(ctx context.Context, line int) (driver.Box, bool, error) {
	if err := ctx.Err(); err != nil {
		return driver.Box{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Precise || line < 1 || line > s.cfg.Lines || s.hidden(line) {
		return driver.Box{}, false, nil
	}
	return driver.Box{
		X:      48,
		Y:      s.screenTop(line),
		Width:  s.cfg.ViewportWidth - 48,
		Height: s.cfg.LineHeight,
	}, true, nil
}

// LineCount implements driver.LineCounter when Config.ExactCount is set.
func (s *Sim) LineCount(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if !s.cfg.ExactCount {
		return 0, false, nil
	}
	return s.cfg.Lines, true, nil
}

// hidden reports whether line is inside a collapsed fold.
func (s *Sim) hidden(line int) bool {
	for _, r := range s.cfg.Hidden {
		if line >= r[0] && line <= r[1] {
			return true
		}
	}
	return false
}

// visualRow maps a document line to its 1-based rendered row, skipping
// hidden lines. Callers hold s.mu.
func (s *Sim) visualRow(line int) int {
	row := line
	for _, r := range s.cfg.Hidden {
		if r[0] >= line {
			continue
		}
		last := r[1]
		if last >= line {
			last = line - 1
		}
		row -= last - r[0] + 1
	}
	return row
}

// visibleLineCount is the document length minus folded lines. Callers hold
// s.mu.
func (s *Sim) visibleLineCount() int {
	n := s.cfg.Lines
	for _, r := range s.cfg.Hidden {
		lo, hi := r[0], r[1]
		if lo < 1 {
			lo = 1
		}
		if hi > s.cfg.Lines {
			hi = s.cfg.Lines
		}
		if hi >= lo {
			n -= hi - lo + 1
		}
	}
	return n
}

// screenTop is the screen y of line's top edge at the current offset.
// Callers hold s.mu.
func (s *Sim) screenTop(line int) float64 {
	return s.cfg.ViewportTop + float64(s.visualRow(line)-1)*s.cfg.LineHeight - s.scrollTop
}

// rendered returns the materialized line numbers: lines whose visual row
// falls in the viewport window padded by overscan, plus anchors. Callers
// hold s.mu.
func (s *Sim) rendered() []int {
	h := s.cfg.LineHeight
	firstRow := int(math.Floor(s.scrollTop/h)) + 1 - s.cfg.Overscan
	lastRow := int(math.Ceil((s.scrollTop+s.cfg.ViewportHeight)/h)) + s.cfg.Overscan

	anchor := make(map[int]bool, len(s.cfg.Anchors))
	for _, n := range s.cfg.Anchors {
		anchor[n] = true
	}

	var out []int
	for n := 1; n <= s.cfg.Lines; n++ {
		if s.hidden(n) {
			continue
		}
		row := s.visualRow(n)
		if (row >= firstRow && row <= lastRow) || anchor[n] {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

func (s *Sim) visible(top, height float64) bool {
	return top+height > s.cfg.ViewportTop && top < s.cfg.ViewportTop+s.cfg.ViewportHeight
}

func (s *Sim) gutterNodes() []driver.Node {
	var out []driver.Node
	for _, n := range s.rendered() {
		top := s.screenTop(n)
		out = append(out, driver.Node{
			Ref:     fmt.Sprintf("%s-gutter-%d", s.id, n),
			Box:     driver.Box{X: 8, Y: top, Width: 40, Height: s.cfg.LineHeight},
			Text:    fmt.Sprintf("%d", n),
			Visible: s.visible(top, s.cfg.LineHeight),
		})
	}
	if !s.cfg.NoPlaceholders {
		// Width pre-measurement artifacts real editors keep in the DOM.
		out = append(out,
			driver.Node{
				Ref:  s.id + "-gutter-measure-far",
				Box:  driver.Box{X: 8, Y: -50000, Width: 40, Height: s.cfg.LineHeight},
				Text: "999",
			},
			driver.Node{
				Ref:  s.id + "-gutter-measure-flat",
				Box:  driver.Box{X: 8, Y: s.cfg.ViewportTop, Width: 40, Height: 0},
				Text: "888",
			},
		)
	}
	return out
}

func (s *Sim) lineNodes() []driver.Node {
	var out []driver.Node
	for _, n := range s.rendered() {
		top := s.screenTop(n) + s.cfg.Jitter
		out = append(out, driver.Node{
			Ref:     fmt.Sprintf("%s-line-%d", s.id, n),
			Box:     driver.Box{X: 48, Y: top, Width: s.cfg.ViewportWidth - 48, Height: s.cfg.LineHeight},
			Text:    fmt.Sprintf("line %d of the fixture document", n),
			Visible: s.visible(top, s.cfg.LineHeight),
		})
	}
	return out
}
