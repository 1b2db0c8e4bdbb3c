package paging

import (
	"fmt"
	"log"

	"github.com/sarchlab/pagesim/sim"
)

// EventKind is the kind of a trace event.
type EventKind int

// The events a Manager reports while tracing is enabled.
const (
	EventRead EventKind = iota
	EventWrite
	EventPageFault
	EventDiskRead
	EventDiskWrite
	EventEvict
)

var eventKindNames = [...]string{
	EventRead:      "read",
	EventWrite:     "write",
	EventPageFault: "page_fault",
	EventDiskRead:  "disk_read",
	EventDiskWrite: "disk_write",
	EventEvict:     "evict",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}

	return eventKindNames[k]
}

// An Event is one line of the human readable trace.
type Event struct {
	Kind EventKind
	Page Page
}

// String renders the event as a trace line. Pages are printed in lowercase
// hexadecimal without a 0x prefix.
func (e Event) String() string {
	switch e.Kind {
	case EventRead:
		return fmt.Sprintf("reading from %x", int64(e.Page))
	case EventWrite:
		return fmt.Sprintf("writing to %x", int64(e.Page))
	case EventPageFault:
		return fmt.Sprintf("page fault on %x", int64(e.Page))
	case EventDiskRead:
		return fmt.Sprintf("reading page %x from disk", int64(e.Page))
	case EventDiskWrite:
		return fmt.Sprintf("writing page %x to disk", int64(e.Page))
	case EventEvict:
		return fmt.Sprintf("evicting page %x", int64(e.Page))
	default:
		return fmt.Sprintf("%s %x", e.Kind, int64(e.Page))
	}
}

// A TraceSink receives trace events from a Manager.
type TraceSink interface {
	Trace(evt Event)
}

// TraceSinkFunc adapts a function to the TraceSink interface.
type TraceSinkFunc func(evt Event)

// Trace calls f(evt).
func (f TraceSinkFunc) Trace(evt Event) {
	f(evt)
}

type logTraceSink struct {
	logger *log.Logger
}

// NewLogTraceSink returns a TraceSink that prints one line per event to the
// logger.
func NewLogTraceSink(logger *log.Logger) TraceSink {
	return &logTraceSink{logger: logger}
}

func (s *logTraceSink) Trace(evt Event) {
	s.logger.Println(evt.String())
}

// Hook positions that a Manager invokes. Hooks fire whether or not tracing is
// enabled.
var (
	// HookPosAccess fires after a read or a write completes. The item is an
	// AccessInfo.
	HookPosAccess = &sim.HookPos{Name: "PageAccess"}

	// HookPosPageFault fires when an access misses. The item is the Page.
	HookPosPageFault = &sim.HookPos{Name: "PageFault"}

	// HookPosPageLoad fires after a page is loaded. The item is a
	// FrameEvent.
	HookPosPageLoad = &sim.HookPos{Name: "PageLoad"}

	// HookPosPageEvict fires after a page is evicted. The item is a
	// FrameEvent whose Dirty field tells whether it was written back.
	HookPosPageEvict = &sim.HookPos{Name: "PageEvict"}
)

// AccessInfo is the hook item of HookPosAccess.
type AccessInfo struct {
	Page    Page
	IsWrite bool
}

// FrameEvent is the hook item of HookPosPageLoad and HookPosPageEvict.
type FrameEvent struct {
	Page  Page
	Frame Frame
	Dirty bool
}
