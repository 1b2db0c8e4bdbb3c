package paging

import (
	"log"
	"os"
	"sync"

	"github.com/sarchlab/pagesim/sim"
)

// A Manager simulates the page-replacement layer of a virtual memory system
// with a fixed number of frames. Every public method runs under a single lock,
// so a Manager can be shared, but each call completes its whole fault, evict,
// and load sequence before the next one starts.
//
// Hooks are invoked while the lock is held and must not call back into the
// Manager.
type Manager struct {
	sim.HookableBase

	lock         sync.Mutex
	name         string
	tables       *tables
	policy       Policy
	stats        Stats
	sink         TraceSink
	traceEnabled bool
}

// NewManager creates a Manager with frameCount frames, all of them free, that
// evicts according to policy.
func NewManager(frameCount int, policy Policy) (*Manager, error) {
	if policy == nil {
		return nil, newError(KindInvalidConfiguration, "new manager",
			"policy must not be nil")
	}

	return MakeBuilder().
		WithFrameCount(frameCount).
		WithPolicy(policy).
		Build("MemoryManager")
}

// Name returns the name of the manager.
func (m *Manager) Name() string {
	return m.name
}

// PolicyName returns the name of the replacement policy.
func (m *Manager) PolicyName() string {
	return m.policy.Name()
}

// FrameCount returns the number of physical frames.
func (m *Manager) FrameCount() int {
	return m.tables.FrameCount()
}

// Read simulates a read of the page.
func (m *Manager) Read(page Page) error {
	return m.access("read", page, false)
}

// Write simulates a write of the page. The page's frame becomes dirty.
func (m *Manager) Write(page Page) error {
	return m.access("write", page, true)
}

func (m *Manager) access(op string, page Page, isWrite bool) error {
	if page < 0 {
		return newError(KindInvalidPage, op, "page %d is negative", page)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if isWrite {
		m.trace(EventWrite, page)
	} else {
		m.trace(EventRead, page)
	}

	if _, resident := m.tables.FrameOf(page); !resident {
		m.handlePageFault(page)
	}

	if isWrite {
		m.tables.markDirty(page)
	}

	m.policy.UpdateAccessInfo(m.tables, page, isWrite)

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosAccess,
		Item:   AccessInfo{Page: page, IsWrite: isWrite},
	})

	return nil
}

func (m *Manager) handlePageFault(page Page) {
	m.stats.Faults++
	m.trace(EventPageFault, page)
	m.InvokeHook(sim.HookCtx{Domain: m, Pos: HookPosPageFault, Item: page})

	if frame, found := m.tables.popFreeFrame(); found {
		m.loadPage(page, frame)
		return
	}

	frame, found := m.policy.SelectVictim(m.tables)
	if !found {
		panic(inconsistent("page fault",
			"%s policy found no victim among %d occupied frames",
			m.policy.Name(), m.tables.ResidentCount()))
	}

	m.evictPage(frame)
	m.loadPage(page, frame)
}

func (m *Manager) loadPage(page Page, frame Frame) {
	m.tables.insert(page, frame)
	m.stats.DiskReads++
	m.trace(EventDiskRead, page)
	m.policy.PageLoaded(page, frame)

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosPageLoad,
		Item:   FrameEvent{Page: page, Frame: frame},
	})
}

func (m *Manager) evictPage(frame Frame) Page {
	page, occupied := m.tables.PageIn(frame)
	if !occupied {
		panic(inconsistent("evict", "victim frame %d is not occupied", frame))
	}

	dirty := m.tables.isDirty(page)
	if dirty {
		m.stats.DiskWrites++
		m.trace(EventDiskWrite, page)
	}

	m.trace(EventEvict, page)
	m.tables.remove(frame)
	m.policy.PageEvicted(page, frame)

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosPageEvict,
		Item:   FrameEvent{Page: page, Frame: frame, Dirty: dirty},
	})

	return page
}

func (m *Manager) trace(kind EventKind, page Page) {
	if !m.traceEnabled {
		return
	}

	m.sink.Trace(Event{Kind: kind, Page: page})
}

// IsResident returns true if the page is currently mapped to a frame.
func (m *Manager) IsResident(page Page) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	_, found := m.tables.FrameOf(page)

	return found
}

// IsDirty returns true if the page is resident and has been written since it
// was loaded.
func (m *Manager) IsDirty(page Page) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.tables.isDirty(page)
}

// ResidentPages returns the resident pages in ascending order.
func (m *Manager) ResidentPages() []Page {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.tables.ResidentPages()
}

// FaultCount returns the number of page faults so far.
func (m *Manager) FaultCount() uint64 {
	return m.Stats().Faults
}

// DiskReadCount returns the number of pages loaded from disk so far.
func (m *Manager) DiskReadCount() uint64 {
	return m.Stats().DiskReads
}

// DiskWriteCount returns the number of dirty pages written back so far.
func (m *Manager) DiskWriteCount() uint64 {
	return m.Stats().DiskWrites
}

// Stats returns a copy of all the counters.
func (m *Manager) Stats() Stats {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.stats
}

// EnableTrace starts sending trace events to the trace sink.
func (m *Manager) EnableTrace() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.traceEnabled = true
}

// DisableTrace stops sending trace events.
func (m *Manager) DisableTrace() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.traceEnabled = false
}

// TraceEnabled tells if trace events are being sent.
func (m *Manager) TraceEnabled() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.traceEnabled
}

// Snapshot copies the frame table and the counters.
func (m *Manager) Snapshot() Snapshot {
	m.lock.Lock()
	defer m.lock.Unlock()

	s := Snapshot{
		Name:       m.name,
		Policy:     m.policy.Name(),
		FrameCount: m.tables.FrameCount(),
		Stats:      m.stats,
		Frames:     make([]FrameSnapshot, m.tables.FrameCount()),
	}

	for i, e := range m.tables.frameTable {
		s.Frames[i] = FrameSnapshot{
			Frame:    Frame(i),
			Occupied: e.occupied,
			Page:     e.page,
			Dirty:    e.dirty,
		}
	}

	return s
}

// A BookkeepingChecker is a Policy that can verify that its state only refers
// to resident pages and occupied frames.
type BookkeepingChecker interface {
	CheckBookkeeping(view Residency) error
}

// CheckInvariants verifies that the page table and the frame table are
// inverses, that the free frames are exactly the unoccupied ones, and, if
// the policy supports it, that the policy bookkeeping only covers resident
// pages.
func (m *Manager) CheckInvariants() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.tables.check(); err != nil {
		return err
	}

	if checker, ok := m.policy.(BookkeepingChecker); ok {
		return checker.CheckBookkeeping(m.tables)
	}

	return nil
}

func defaultTraceSink() TraceSink {
	return NewLogTraceSink(log.New(os.Stdout, "", 0))
}
