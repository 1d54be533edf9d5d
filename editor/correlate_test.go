package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/editprobe/editprobe/driver"
)

func gutterNode(y, h float64, text string) driver.Node {
	return driver.Node{Box: driver.Box{X: 8, Y: y, Width: 40, Height: h}, Text: text}
}

func TestBuildGutterIndex_FiltersPlaceholders(t *testing.T) {
	idx := buildGutterIndex([]driver.Node{
		gutterNode(10, 19, "1"),
		gutterNode(29, 19, "2"),
		gutterNode(-50000, 19, "999"), // far off-screen measurement artifact
		gutterNode(10, 0, "888"),      // zero-height measurement artifact
		gutterNode(48, 19, "not a number"),
		gutterNode(67, 19, "-3"),
	})

	assert.Len(t, idx.byTop, 2)
	n, ok := idx.lineFor(10)
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	n, ok = idx.lineFor(29)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = idx.lineFor(-50000)
	assert.False(t, ok, "placeholder must not be attributable")
	_, ok = idx.lineFor(48)
	assert.False(t, ok)
}

func TestGutterIndex_ToleranceMatching(t *testing.T) {
	idx := buildGutterIndex([]driver.Node{gutterNode(100.4, 19, "42")})

	tests := []struct {
		name string
		top  float64
		ok   bool
	}{
		{"exact", 100, true},
		{"sub-pixel low", 99.7, true},
		{"sub-pixel high", 100.3, true},
		{"within tolerance above", 104.9, true},
		{"within tolerance below", 95.2, true},
		{"beyond tolerance", 106.6, false},
		{"far away", 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := idx.lineFor(tt.top)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, 42, n)
			}
		})
	}
}

func TestGutterIndex_NearestWins(t *testing.T) {
	// Two annotations 19px apart; a line top between them resolves to the
	// closer one.
	idx := buildGutterIndex([]driver.Node{
		gutterNode(100, 19, "10"),
		gutterNode(119, 19, "11"),
	})

	n, ok := idx.lineFor(102)
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	n, ok = idx.lineFor(117)
	assert.True(t, ok)
	assert.Equal(t, 11, n)
}

func TestGutterIndex_TopOf(t *testing.T) {
	idx := buildGutterIndex([]driver.Node{gutterNode(100.4, 19, "42")})

	top, ok := idx.topOf(42)
	assert.True(t, ok)
	assert.Equal(t, 100, top)

	_, ok = idx.topOf(43)
	assert.False(t, ok)
}

func TestParseLineNumber(t *testing.T) {
	tests := []struct {
		text string
		n    int
		ok   bool
	}{
		{"1", 1, true},
		{"  42 ", 42, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"", 0, false},
		{"12a", 0, false},
		{"3.5", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseLineNumber(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		if tt.ok {
			assert.Equal(t, tt.n, n, "text %q", tt.text)
		}
	}
}
