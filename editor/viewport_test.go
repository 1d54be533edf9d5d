package editor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editprobe/editprobe/drivertest"
	"github.com/editprobe/editprobe/editor"
)

// newEditor builds an editor over a sim with fast polling so waits in tests
// do not dominate runtime.
func newEditor(t *testing.T, cfg drivertest.Config) (*editor.Editor, *drivertest.Sim) {
	t.Helper()
	sim := drivertest.New(cfg)
	ed, err := editor.New(sim,
		editor.WithPollInterval(time.Millisecond),
		editor.WithDefaultTimeout(2*time.Second),
	)
	require.NoError(t, err)
	return ed, sim
}

func TestLinesInViewport_TopOfDocument(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	v, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)

	// 380px viewport over 19px lines: 20 lines overlap; the 20th hangs a
	// fraction of a pixel past the bottom edge, so 19 are fully visible.
	assert.Equal(t, []editor.LineRange{{First: 1, Last: 20}}, v.Partially)
	assert.Equal(t, []editor.LineRange{{First: 1, Last: 19}}, v.Fully)
}

func TestLinesInViewport_Idempotent(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	require.NoError(t, ed.ScrollToLine(ctx, 300))
	first, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)
	second, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLinesInViewport_FullySubsetOfPartially(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	for _, line := range []int{1, 17, 250, 500, 993} {
		require.NoError(t, ed.ScrollToLine(ctx, line))
		v, err := ed.LinesInViewport(ctx)
		require.NoError(t, err)

		require.NotEmpty(t, v.Fully)
		for _, r := range v.Fully {
			for n := r.First; n <= r.Last; n++ {
				assert.True(t, v.Covers(n), "line %d fully visible but not partially (scrolled to %d)", n, line)
			}
		}
	}
}

func TestLinesInViewport_FoldGapPreserved(t *testing.T) {
	// Lines 6-50 collapsed: lines 5 and 51 are adjacent on screen but not
	// in the document, so results must show two ranges, not one.
	ed, _ := newEditor(t, drivertest.Config{Lines: 200, Hidden: [][2]int{{6, 50}}})
	ctx := context.Background()

	v, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)

	require.Len(t, v.Partially, 2)
	assert.Equal(t, editor.LineRange{First: 1, Last: 5}, v.Partially[0])
	assert.Equal(t, 51, v.Partially[1].First)
	assert.False(t, v.Covers(25), "folded line must not be reported visible")
}

func TestLinesInViewport_EmptyDocument(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1, Hidden: [][2]int{{1, 1}}})
	ctx := context.Background()

	v, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)
	assert.Empty(t, v.Partially)
	assert.Empty(t, v.Fully)
}

func TestLinesInViewport_AnchorOffscreenNotReported(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	require.NoError(t, ed.ScrollToLine(ctx, 500))
	v, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)

	// Line 1 stays rendered as an anchor but sits far above the viewport.
	assert.False(t, v.Covers(1))
	assert.True(t, v.Covers(500))
}

func TestVisibleLineTexts(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 100})
	ctx := context.Background()

	require.NoError(t, ed.ScrollToLine(ctx, 40))
	texts, err := ed.VisibleLineTexts(ctx)
	require.NoError(t, err)

	require.Contains(t, texts, 40)
	assert.Contains(t, texts[40], "40")
	assert.NotContains(t, texts, 1)
}

func TestLineCount(t *testing.T) {
	ctx := context.Background()

	t.Run("exact from model", func(t *testing.T) {
		ed, _ := newEditor(t, drivertest.Config{Lines: 1234, ExactCount: true})
		n, err := ed.LineCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1234, n)
	})

	t.Run("estimated from geometry", func(t *testing.T) {
		ed, _ := newEditor(t, drivertest.Config{Lines: 1234})
		n, err := ed.LineCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1234, n, "uniform-height estimate should be exact for unwrapped content")
	})
}
