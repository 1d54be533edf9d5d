package editor

import "fmt"

// Profile names the DOM hooks for one editor flavor: the CSS selectors for
// line-number gutter annotations, content-line elements, and the scrollable
// container. A Profile is plain data passed at construction; there is no
// process-wide mutable registry.
type Profile struct {
	// Gutter matches the rendered line-number annotations.
	Gutter string
	// Line matches the rendered content-line elements.
	Line string
	// Scroller matches the scrollable container owning the scroll offset.
	Scroller string
}

func (p Profile) validate() error {
	if p.Gutter == "" {
		return fmt.Errorf("profile gutter selector cannot be empty")
	}
	if p.Line == "" {
		return fmt.Errorf("profile line selector cannot be empty")
	}
	if p.Scroller == "" {
		return fmt.Errorf("profile scroller selector cannot be empty")
	}
	return nil
}

// DefaultProfile returns the selectors for a stock Monaco editor. Other
// editors (CodeMirror, custom widgets) are supported by passing an explicit
// Profile via WithProfile.
func DefaultProfile() Profile {
	return Profile{
		Gutter:   ".margin-view-overlays .line-numbers",
		Line:     ".view-lines > .view-line",
		Scroller: ".monaco-scrollable-element.editor-scrollable",
	}
}
