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

func TestScrollToLineAndLocate(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	// Parked at the top, line 900 must not be in the viewport at all.
	before, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)
	assert.False(t, before.Covers(900))

	node, err := ed.ScrollToLineAndLocate(ctx, 900)
	require.NoError(t, err)
	assert.Contains(t, node.Text, "900")
	assert.True(t, node.Visible)
	assert.NotEmpty(t, node.Ref)

	after, err := ed.LinesInViewport(ctx)
	require.NoError(t, err)
	assert.True(t, after.Covers(900))
}

func TestScrollToLineAndLocate_Positions(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	for _, pos := range []editor.Position{editor.AtTop, editor.AtCenter, editor.AtBottom} {
		node, err := ed.ScrollToLineAndLocate(ctx, 555, editor.WithPosition(pos))
		require.NoError(t, err, "position %v", pos)
		assert.Contains(t, node.Text, "555")
	}
}

func TestScrollToLineAndLocate_AnimatedScroll(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000, SettleSteps: 6})
	ctx := context.Background()

	node, err := ed.ScrollToLineAndLocate(ctx, 321)
	require.NoError(t, err)
	assert.Contains(t, node.Text, "321")
}

func TestScrollToLineAndLocate_LineBeyondDocument(t *testing.T) {
	// Line 5000 of a 1000-line document: the scroll clamps to the end and
	// the gutter annotation never appears, so the call must fail naming the
	// line after the timeout, not hang.
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx := context.Background()

	start := time.Now()
	_, err := ed.ScrollToLineAndLocate(ctx, 5000, editor.WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5000")
	assert.Contains(t, err.Error(), "never became visible")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestScrollToLineAndLocate_CancelledContext(t *testing.T) {
	ed, _ := newEditor(t, drivertest.Config{Lines: 1000})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ed.ScrollToLineAndLocate(ctx, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
