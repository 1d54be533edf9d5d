// Package driver defines the narrow surface the editor helpers need from a
// UI-automation backend: CSS-selector element snapshots, scroll container
// metrics, and scroll mutation. Concrete backends live in chromedriver
// (a real browser over CDP) and drivertest (an in-memory simulation).
package driver

import "context"

// Box is a screen-space bounding rectangle in device pixels.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Right returns the x coordinate of the box's right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Scroll is a scrollable container's offset in pixels.
type Scroll struct {
	Top  float64
	Left float64
}

// Node is a point-in-time snapshot of one rendered element. Snapshots are
// never updated in place; re-query to observe layout changes.
type Node struct {
	// Ref identifies the element across queries, when the backend supports
	// re-identification. Backends that cannot tag elements leave it empty.
	Ref string
	// Box is the element's bounding rectangle at query time.
	Box Box
	// Text is the element's visible text content.
	Text string
	// Visible reports whether the element was painted and on screen at
	// query time.
	Visible bool
}

// Metrics describes a scrollable container at query time.
type Metrics struct {
	// Viewport is the container's bounding rectangle.
	Viewport Box
	// Scroll is the container's current offset.
	Scroll Scroll
	// ContentHeight is the total scrollable height in pixels
	// (scrollHeight, not clientHeight).
	ContentHeight float64
}

// Surface is the minimal capability every backend must provide. All methods
// are single browser round-trips; callers sequence them.
type Surface interface {
	// Query returns snapshots of every element matching the CSS selector,
	// in document order. A selector matching nothing yields an empty slice,
	// not an error.
	Query(ctx context.Context, selector string) ([]Node, error)

	// Metrics reads the scrollable container identified by selector.
	Metrics(ctx context.Context, selector string) (Metrics, error)

	// SetScroll writes the container's scroll offset. The container may
	// animate toward the target; observe Metrics to detect settling.
	SetScroll(ctx context.Context, selector string, s Scroll) error
}

// CoordinateResolver is an optional Surface capability: precise screen
// geometry for a document line, straight from the host editor's own layout
// engine. Implementations return ok == false when the editor has not (yet)
// exposed the lookup; that is the normal "not ready" signal, not an error.
// Errors are reserved for transport failures.
type CoordinateResolver interface {
	LineBox(ctx context.Context, line int) (box Box, ok bool, err error)
}

// LineCounter is an optional Surface capability: the exact document line
// count from the host editor's model, as opposed to a geometry estimate.
// ok == false means the model is not reachable.
type LineCounter interface {
	LineCount(ctx context.Context) (n int, ok bool, err error)
}
