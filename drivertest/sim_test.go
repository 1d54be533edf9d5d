package drivertest

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editprobe/editprobe/driver"
	"github.com/editprobe/editprobe/editor"
)

func TestSim_RendersWindowPlusAnchors(t *testing.T) {
	sim := New(Config{Lines: 1000})
	ctx := context.Background()
	p := editor.DefaultProfile()

	require.NoError(t, sim.SetScroll(ctx, p.Scroller, driver.Scroll{Top: 499 * 19}))

	gutter, err := sim.Query(ctx, p.Gutter)
	require.NoError(t, err)

	var lines []int
	for _, g := range gutter {
		if g.Box.Height == 0 || g.Box.Y < -40000 {
			continue
		}
		n, err := strconv.Atoi(g.Text)
		require.NoError(t, err)
		lines = append(lines, n)
	}

	assert.Contains(t, lines, 1, "anchor line must stay rendered")
	assert.Contains(t, lines, 500)
	assert.NotContains(t, lines, 250, "mid-document line outside the window must not be rendered")
}

func TestSim_EmitsMeasurementPlaceholders(t *testing.T) {
	sim := New(Config{})
	ctx := context.Background()

	gutter, err := sim.Query(ctx, editor.DefaultProfile().Gutter)
	require.NoError(t, err)

	var zeroHeight, farOff int
	for _, g := range gutter {
		if g.Box.Height == 0 {
			zeroHeight++
		}
		if g.Box.Y < -40000 {
			farOff++
		}
	}
	assert.Equal(t, 1, zeroHeight)
	assert.Equal(t, 1, farOff)

	none, err := New(Config{NoPlaceholders: true}).Query(ctx, editor.DefaultProfile().Gutter)
	require.NoError(t, err)
	for _, g := range none {
		assert.NotZero(t, g.Box.Height)
		assert.Greater(t, g.Box.Y, -40000.0)
	}
}

func TestSim_ScrollClamping(t *testing.T) {
	sim := New(Config{Lines: 100})
	ctx := context.Background()
	scroller := editor.DefaultProfile().Scroller

	require.NoError(t, sim.SetScroll(ctx, scroller, driver.Scroll{Top: -50}))
	assert.Zero(t, sim.ScrollTop())

	require.NoError(t, sim.SetScroll(ctx, scroller, driver.Scroll{Top: 1e9}))
	assert.Equal(t, 100*19.0-380, sim.ScrollTop())
}

func TestSim_AnimatedScrollSettles(t *testing.T) {
	sim := New(Config{Lines: 1000, SettleSteps: 4})
	ctx := context.Background()
	scroller := editor.DefaultProfile().Scroller

	require.NoError(t, sim.SetScroll(ctx, scroller, driver.Scroll{Top: 1900}))

	var tops []float64
	for i := 0; i < 6; i++ {
		m, err := sim.Metrics(ctx, scroller)
		require.NoError(t, err)
		tops = append(tops, m.Scroll.Top)
	}

	assert.Less(t, tops[0], 1900.0, "first sample should be mid-animation")
	for i := 1; i < len(tops); i++ {
		assert.GreaterOrEqual(t, tops[i], tops[i-1])
	}
	assert.Equal(t, 1900.0, tops[4])
	assert.Equal(t, 1900.0, tops[5], "offset must hold after settling")
}

func TestSim_HiddenLinesTakeNoSpace(t *testing.T) {
	sim := New(Config{Lines: 100, Hidden: [][2]int{{11, 20}}})
	ctx := context.Background()
	p := editor.DefaultProfile()

	m, err := sim.Metrics(ctx, p.Scroller)
	require.NoError(t, err)
	assert.Equal(t, 90*19.0, m.ContentHeight)

	gutter, err := sim.Query(ctx, p.Gutter)
	require.NoError(t, err)

	byLine := make(map[int]driver.Node)
	for _, g := range gutter {
		if g.Box.Height == 0 || g.Box.Y < -40000 {
			continue
		}
		n, err := strconv.Atoi(g.Text)
		require.NoError(t, err)
		byLine[n] = g
	}

	require.Contains(t, byLine, 10)
	require.Contains(t, byLine, 21)
	assert.NotContains(t, byLine, 15, "folded line must not render")
	assert.Equal(t, byLine[10].Box.Y+19, byLine[21].Box.Y, "lines around a fold are adjacent on screen")
}

func TestSim_Capabilities(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled by default", func(t *testing.T) {
		sim := New(Config{})
		_, ok, err := sim.LineBox(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = sim.LineCount(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("precise geometry", func(t *testing.T) {
		sim := New(Config{Lines: 100, Precise: true})
		box, ok, err := sim.LineBox(ctx, 3)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 10+2*19.0, box.Y)
		assert.Equal(t, 19.0, box.Height)

		_, ok, err = sim.LineBox(ctx, 101)
		require.NoError(t, err)
		assert.False(t, ok, "out-of-document line has no geometry")
	})

	t.Run("exact count", func(t *testing.T) {
		sim := New(Config{Lines: 77, ExactCount: true})
		n, ok, err := sim.LineCount(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 77, n)
	})
}

// Compile-time capability checks.
var (
	_ driver.Surface            = (*Sim)(nil)
	_ driver.CoordinateResolver = (*Sim)(nil)
	_ driver.LineCounter        = (*Sim)(nil)
)
