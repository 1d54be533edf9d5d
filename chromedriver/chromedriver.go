// Package chromedriver implements driver.Surface against a real browser over
// the Chrome DevTools Protocol, via chromedp. Contexts passed to its methods
// must be chromedp contexts attached to the target page.
package chromedriver

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/editprobe/editprobe/driver"
	"github.com/editprobe/editprobe/internal/script"
)

// DefaultRefAttr is the attribute used to tag located elements so they can
// be re-identified across queries.
const DefaultRefAttr = "data-editprobe-ref"

// Surface drives a page over CDP. The zero value is not usable; construct
// with New.
type Surface struct {
	refAttr string
	log     zerolog.Logger

	// Optional page-side hooks into the host editor's own APIs. Empty
	// hooks report their capability as unavailable rather than erroring.
	lineBoxScript   string
	lineCountScript string
}

// Option configures Surface creation.
type Option interface {
	applyOption(*surfaceConfig) error
}

type optionFunc func(*surfaceConfig) error

func (f optionFunc) applyOption(c *surfaceConfig) error { return f(c) }

type surfaceConfig struct {
	refAttr         string
	log             zerolog.Logger
	lineBoxScript   string
	lineCountScript string
}

// WithRefAttr overrides the element-tagging attribute name.
func WithRefAttr(attr string) Option {
	return optionFunc(func(c *surfaceConfig) error {
		if attr == "" {
			return fmt.Errorf("ref attribute cannot be empty")
		}
		c.refAttr = attr
		return nil
	})
}

// WithLogger sets a logger for wire-level debug traces.
func WithLogger(log zerolog.Logger) Option {
	return optionFunc(func(c *surfaceConfig) error {
		c.log = log
		return nil
	})
}

// WithLineBoxScript installs a page-side JS function expression
// (line) => {x, y, w, h} | null that resolves a document line to precise
// screen geometry using the host editor's APIs. Null means the editor is not
// ready; the caller falls back to estimation. See MonacoLineBoxScript.
func WithLineBoxScript(fnExpr string) Option {
	return optionFunc(func(c *surfaceConfig) error {
		c.lineBoxScript = fnExpr
		return nil
	})
}

// WithLineCountScript installs a page-side JS function expression
// () => number | null returning the document's exact line count from the
// host editor's model. See MonacoLineCountScript.
func WithLineCountScript(fnExpr string) Option {
	return optionFunc(func(c *surfaceConfig) error {
		c.lineCountScript = fnExpr
		return nil
	})
}

// New creates a Surface.
func New(options ...Option) (*Surface, error) {
	cfg := &surfaceConfig{
		refAttr: DefaultRefAttr,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return &Surface{
		refAttr:         cfg.refAttr,
		log:             cfg.log,
		lineBoxScript:   cfg.lineBoxScript,
		lineCountScript: cfg.lineCountScript,
	}, nil
}

type nodePayload struct {
	Ref     string  `json:"ref"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Text    string  `json:"text"`
	Visible bool    `json:"visible"`
}

// Query implements driver.Surface.
func (s *Surface) Query(ctx context.Context, selector string) ([]driver.Node, error) {
	qid := uuid.NewString()
	var raw []nodePayload
	if err := chromedp.Run(ctx, chromedp.Evaluate(script.Boxes(selector, s.refAttr, qid), &raw)); err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", selector, err)
	}

	nodes := make([]driver.Node, len(raw))
	for i, p := range raw {
		nodes[i] = driver.Node{
			Ref:     p.Ref,
			Box:     driver.Box{X: p.X, Y: p.Y, Width: p.W, Height: p.H},
			Text:    p.Text,
			Visible: p.Visible,
		}
	}
	s.log.Debug().Str("selector", selector).Int("count", len(nodes)).Msg("queried elements")
	return nodes, nil
}

type metricsPayload struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Top     float64 `json:"top"`
	Left    float64 `json:"left"`
	Content float64 `json:"content"`
}

// Metrics implements driver.Surface.
func (s *Surface) Metrics(ctx context.Context, selector string) (driver.Metrics, error) {
	var raw *metricsPayload
	if err := chromedp.Run(ctx, chromedp.Evaluate(script.Metrics(selector), &raw)); err != nil {
		return driver.Metrics{}, fmt.Errorf("failed to read metrics for %q: %w", selector, err)
	}
	if raw == nil {
		return driver.Metrics{}, fmt.Errorf("no scrollable container matches %q", selector)
	}
	return driver.Metrics{
		Viewport:      driver.Box{X: raw.X, Y: raw.Y, Width: raw.W, Height: raw.H},
		Scroll:        driver.Scroll{Top: raw.Top, Left: raw.Left},
		ContentHeight: raw.Content,
	}, nil
}

// SetScroll implements driver.Surface.
func (s *Surface) SetScroll(ctx context.Context, selector string, sc driver.Scroll) error {
	var found bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script.SetScroll(selector, sc.Top, sc.Left), &found)); err != nil {
		return fmt.Errorf("failed to scroll %q: %w", selector, err)
	}
	if !found {
		return fmt.Errorf("no scrollable container matches %q", selector)
	}
	s.log.Debug().Str("selector", selector).Float64("top", sc.Top).Msg("set scroll offset")
	return nil
}

// Hooks may be async: editor APIs are free to return a promise, so hook
// evaluations await settlement before unmarshalling.
func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

type lineBoxPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// LineBox implements driver.CoordinateResolver when a line-box hook was
// installed. Without a hook, or when the hook returns null (editor not
// ready), the capability reports unavailable.
func (s *Surface) LineBox(ctx context.Context, line int) (driver.Box, bool, error) {
	if s.lineBoxScript == "" {
		return driver.Box{}, false, nil
	}
	var raw *lineBoxPayload
	if err := chromedp.Run(ctx, chromedp.Evaluate(script.Call(s.lineBoxScript, line), &raw, awaitPromise)); err != nil {
		return driver.Box{}, false, fmt.Errorf("line box hook failed for line %d: %w", line, err)
	}
	if raw == nil {
		return driver.Box{}, false, nil
	}
	return driver.Box{X: raw.X, Y: raw.Y, Width: raw.W, Height: raw.H}, true, nil
}

// LineCount implements driver.LineCounter when a line-count hook was
// installed.
func (s *Surface) LineCount(ctx context.Context) (int, bool, error) {
	if s.lineCountScript == "" {
		return 0, false, nil
	}
	var raw *int
	if err := chromedp.Run(ctx, chromedp.Evaluate(script.Call0(s.lineCountScript), &raw, awaitPromise)); err != nil {
		return 0, false, fmt.Errorf("line count hook failed: %w", err)
	}
	if raw == nil {
		return 0, false, nil
	}
	return *raw, true, nil
}
