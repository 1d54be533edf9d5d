package editor

import (
	"context"
	"fmt"
	"math"
)

// LineCount returns the document's line count: exact, from the host editor's
// model, when the backend exposes it; otherwise estimated as total scrollable
// height over a uniform line height. The estimate overcounts soft-wrapped
// documents, since each visual row contributes a line height.
func (e *Editor) LineCount(ctx context.Context) (int, error) {
	if e.counter != nil {
		n, ok, err := e.counter.LineCount(ctx)
		if err != nil {
			e.log.Debug().Err(err).Msg("exact line count failed, estimating")
		} else if ok {
			return n, nil
		}
	}

	m, err := e.surface.Metrics(ctx, e.profile.Scroller)
	if err != nil {
		return 0, fmt.Errorf("failed to read scroller metrics: %w", err)
	}
	h, err := e.uniformLineHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot estimate line count: %w", err)
	}
	return int(math.Round(m.ContentHeight / h)), nil
}
