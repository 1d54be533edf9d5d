package editor

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option configures Editor creation.
type Option interface {
	applyOption(*editorConfig) error
}

// optionFunc is the concrete implementation of Option.
type optionFunc func(*editorConfig) error

func (f optionFunc) applyOption(c *editorConfig) error { return f(c) }

// WithProfile sets the DOM selectors for the editor flavor under test.
// Defaults to DefaultProfile.
func WithProfile(p Profile) Option {
	return optionFunc(func(c *editorConfig) error {
		if err := p.validate(); err != nil {
			return err
		}
		c.profile = p
		return nil
	})
}

// WithDefaultTimeout sets the timeout applied to waits when a call does not
// override it. Default is 5 seconds.
func WithDefaultTimeout(d time.Duration) Option {
	return optionFunc(func(c *editorConfig) error {
		if d <= 0 {
			return fmt.Errorf("default timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	})
}

// WithPollInterval sets the sampling interval for waits. Default is 50ms.
func WithPollInterval(d time.Duration) Option {
	return optionFunc(func(c *editorConfig) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", d)
		}
		c.interval = d
		return nil
	})
}

// WithIdleStability sets how many consecutive identical scroll samples count
// as "scroll idle". Default is 3. Values below 2 would declare idle from a
// single sample and are rejected.
func WithIdleStability(n int) Option {
	return optionFunc(func(c *editorConfig) error {
		if n < 2 {
			return fmt.Errorf("idle stability must be >= 2, got %d", n)
		}
		c.stability = n
		return nil
	})
}

// WithLogger sets a logger for debug traces of correlation and scroll
// decisions. Default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return optionFunc(func(c *editorConfig) error {
		c.log = log
		return nil
	})
}

// ScrollOption configures a single scroll or locate call.
type ScrollOption interface {
	applyScrollOption(*scrollConfig) error
}

type scrollOptionFunc func(*scrollConfig) error

func (f scrollOptionFunc) applyScrollOption(c *scrollConfig) error { return f(c) }

// Position is a fractional placement of the target line within the viewport:
// 0 puts the line's top edge at the viewport top, 0.5 centers it, 1 puts the
// line's bottom edge at the viewport bottom. Values outside [0, 1] are
// accepted for fine control.
type Position float64

// Named positions. AtBottom aligns the line's far edge with the viewport
// bottom, not its near edge.
const (
	AtTop    Position = 0
	AtCenter Position = 0.5
	AtBottom Position = 1
)

// WithPosition sets where in the viewport the target line should land.
// Default is AtTop.
func WithPosition(p Position) ScrollOption {
	return scrollOptionFunc(func(c *scrollConfig) error {
		c.position = float64(p)
		return nil
	})
}

// WithTimeout overrides the editor's default timeout for this call's waits.
func WithTimeout(d time.Duration) ScrollOption {
	return scrollOptionFunc(func(c *scrollConfig) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	})
}

// WithoutIdleWait returns immediately after issuing the scroll instead of
// waiting for the scroll offset to settle.
func WithoutIdleWait() ScrollOption {
	return scrollOptionFunc(func(c *scrollConfig) error {
		c.waitForIdle = false
		return nil
	})
}

type scrollConfig struct {
	position    float64
	waitForIdle bool
	timeout     time.Duration
}

func (e *Editor) newScrollConfig(opts []ScrollOption) (scrollConfig, error) {
	cfg := scrollConfig{
		position:    float64(AtTop),
		waitForIdle: true,
		timeout:     e.timeout,
	}
	for _, opt := range opts {
		if err := opt.applyScrollOption(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to apply scroll option: %w", err)
		}
	}
	return cfg, nil
}
