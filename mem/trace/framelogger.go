package trace

import (
	"log"

	"github.com/sarchlab/pagesim/mem/vm/paging"
	"github.com/sarchlab/pagesim/sim"
)

// FrameLogger is a hook that prints every page load and eviction together
// with the frame involved. The trace lines of a paging.Manager do not name
// frames.
type FrameLogger struct {
	sim.LogHookBase
}

// NewFrameLogger creates a FrameLogger that writes to logger.
func NewFrameLogger(logger *log.Logger) *FrameLogger {
	return &FrameLogger{LogHookBase: sim.MakeLogHookBase(logger)}
}

// Func logs load and evict events and ignores the others.
func (h *FrameLogger) Func(ctx sim.HookCtx) {
	evt, ok := ctx.Item.(paging.FrameEvent)
	if !ok {
		return
	}

	switch ctx.Pos {
	case paging.HookPosPageLoad:
		h.Printf("frame %d <- page %x", evt.Frame, int64(evt.Page))
	case paging.HookPosPageEvict:
		if evt.Dirty {
			h.Printf("frame %d -> page %x (dirty)", evt.Frame, int64(evt.Page))
		} else {
			h.Printf("frame %d -> page %x", evt.Frame, int64(evt.Page))
		}
	}
}
