package trace

import (
	"context"
	"slices"

	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/vm/paging"
	"github.com/sarchlab/pagesim/sim"
)

// Table names used by the DBTracer.
const (
	TableEvents = "page_events"
	TableRuns   = "runs"
)

// EventEntry is a row of the page_events table.
type EventEntry struct {
	ID    string `pagesim_data:"unique"`
	RunID string `pagesim_data:"index"`
	Seq   uint64
	What  string `pagesim_data:"index"`
	Page  int64  `pagesim_data:"index"`
	Frame int64
	Dirty bool
}

// RunEntry is a row of the runs table.
type RunEntry struct {
	RunID      string `pagesim_data:"unique"`
	Manager    string
	Policy     string
	Frames     int
	Events     uint64
	Faults     uint64
	DiskReads  uint64
	DiskWrites uint64
}

// A DBTracer is a hook that records the accesses, faults, loads, and
// evictions of a paging.Manager into a database. Seq numbers the accesses of
// a run from 1; a fault, load, or eviction carries the Seq of the access that
// caused it.
type DBTracer struct {
	recorder datarecording.DataRecorder
	runID    string
	seq      uint64
}

// NewDBTracer creates a DBTracer for one run. Several tracers can share a
// recorder; the tables are created by the first one. An empty runID is
// replaced with a generated one.
func NewDBTracer(
	recorder datarecording.DataRecorder,
	runID string,
) *DBTracer {
	if runID == "" {
		runID = xid.New().String()
	}

	t := &DBTracer{
		recorder: recorder,
		runID:    runID,
	}

	tables := recorder.ListTables()
	if !slices.Contains(tables, TableEvents) {
		recorder.CreateTable(TableEvents, EventEntry{})
	}

	if !slices.Contains(tables, TableRuns) {
		recorder.CreateTable(TableRuns, RunEntry{})
	}

	return t
}

// RunID returns the identifier of the run being recorded.
func (t *DBTracer) RunID() string {
	return t.runID
}

// Func records the event behind ctx.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	entry := EventEntry{
		ID:    xid.New().String(),
		RunID: t.runID,
		Seq:   t.seq + 1,
		Frame: -1,
	}

	switch ctx.Pos {
	case paging.HookPosAccess:
		info := ctx.Item.(paging.AccessInfo)
		entry.What = "read"
		if info.IsWrite {
			entry.What = "write"
		}
		entry.Page = int64(info.Page)
		t.seq++
	case paging.HookPosPageFault:
		entry.What = "fault"
		entry.Page = int64(ctx.Item.(paging.Page))
	case paging.HookPosPageLoad:
		evt := ctx.Item.(paging.FrameEvent)
		entry.What = "load"
		entry.Page = int64(evt.Page)
		entry.Frame = int64(evt.Frame)
	case paging.HookPosPageEvict:
		evt := ctx.Item.(paging.FrameEvent)
		entry.What = "evict"
		entry.Page = int64(evt.Page)
		entry.Frame = int64(evt.Frame)
		entry.Dirty = evt.Dirty
	default:
		return
	}

	t.recorder.InsertData(TableEvents, entry)
}

// RecordRun stores the summary of the run.
func (t *DBTracer) RecordRun(m *paging.Manager, events uint64) {
	s := m.Stats()

	t.recorder.InsertData(TableRuns, RunEntry{
		RunID:      t.runID,
		Manager:    m.Name(),
		Policy:     m.PolicyName(),
		Frames:     m.FrameCount(),
		Events:     events,
		Faults:     s.Faults,
		DiskReads:  s.DiskReads,
		DiskWrites: s.DiskWrites,
	})
}

// ReadRuns returns the runs stored in a recording, in the order they were
// recorded.
func ReadRuns(
	ctx context.Context,
	reader datarecording.DataReader,
) ([]RunEntry, error) {
	reader.MapTable(TableRuns, RunEntry{})

	rows, _, err := reader.Query(ctx, TableRuns,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, err
	}

	runs := make([]RunEntry, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, *row.(*RunEntry))
	}

	return runs, nil
}

// ReadEvents returns up to limit events of a run in sequence order, and the
// number of events the run has. A limit of 0 returns all of them.
func ReadEvents(
	ctx context.Context,
	reader datarecording.DataReader,
	runID string,
	limit int,
) ([]EventEntry, int, error) {
	reader.MapTable(TableEvents, EventEntry{})

	rows, total, err := reader.Query(ctx, TableEvents,
		datarecording.QueryParams{
			Where:   "RunID = ?",
			Args:    []any{runID},
			OrderBy: "Seq, rowid",
			Limit:   limit,
		})
	if err != nil {
		return nil, 0, err
	}

	events := make([]EventEntry, 0, len(rows))
	for _, row := range rows {
		events = append(events, *row.(*EventEntry))
	}

	return events, total, nil
}
