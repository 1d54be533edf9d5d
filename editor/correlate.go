package editor

import (
	"math"
	"strconv"
	"strings"

	"github.com/editprobe/editprobe/driver"
)

const (
	// gutterOffscreenMin rejects gutter annotations parked far above the
	// viewport. Monaco keeps width-measurement placeholder annotations at
	// extreme negative offsets; they are not real rows.
	gutterOffscreenMin = -1000.0

	// positionTolerance is the maximum vertical distance, in device pixels,
	// between a content line's top and its gutter annotation's top. Browser
	// layout can put the two a pixel or two apart; exact equality would
	// spuriously drop lines.
	positionTolerance = 5
)

// gutterIndex maps integer-rounded screen tops to document line numbers, and
// back. It is rebuilt from the currently rendered annotations on every query;
// the rendered set changes on every scroll.
type gutterIndex struct {
	byTop  map[int]int
	byLine map[int]int
}

// buildGutterIndex filters the rendered gutter annotations down to real rows
// and indexes them by rounded top coordinate. Zero-height annotations and
// annotations far off-screen are measurement placeholders and are dropped,
// as are annotations whose text does not parse as a line number.
func buildGutterIndex(gutter []driver.Node) gutterIndex {
	idx := gutterIndex{
		byTop:  make(map[int]int, len(gutter)),
		byLine: make(map[int]int, len(gutter)),
	}
	for _, g := range gutter {
		if g.Box.Height == 0 || g.Box.Y < gutterOffscreenMin {
			continue
		}
		line, ok := parseLineNumber(g.Text)
		if !ok {
			continue
		}
		top := roundPx(g.Box.Y)
		idx.byTop[top] = line
		idx.byLine[line] = top
	}
	return idx
}

// lineFor resolves a content line's rounded top coordinate to a document
// line number, tolerating small layout discrepancies. Returns false when no
// annotation sits within tolerance; the caller drops such lines from
// results, since virtualization legitimately renders lines whose gutter
// counterpart is not laid out yet.
func (idx gutterIndex) lineFor(top float64) (int, bool) {
	t := roundPx(top)
	for delta := 0; delta <= positionTolerance; delta++ {
		if line, ok := idx.byTop[t-delta]; ok {
			return line, true
		}
		if delta > 0 {
			if line, ok := idx.byTop[t+delta]; ok {
				return line, true
			}
		}
	}
	return 0, false
}

// topOf returns the rounded screen top of the annotation for the given line
// number, if that line's annotation is currently rendered.
func (idx gutterIndex) topOf(line int) (int, bool) {
	top, ok := idx.byLine[line]
	return top, ok
}

func parseLineNumber(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func roundPx(v float64) int {
	return int(math.Round(v))
}
