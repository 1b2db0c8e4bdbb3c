package paging

import "slices"

type frameEntry struct {
	occupied bool
	page     Page
	dirty    bool
}

// tables holds the page table, the frame table, and the free frame pool. It
// does no locking of its own; the Manager serializes every access.
type tables struct {
	pageTable  map[Page]Frame
	frameTable []frameEntry
	freeFrames []Frame
}

func newTables(frameCount int) *tables {
	t := &tables{
		pageTable:  make(map[Page]Frame, frameCount),
		frameTable: make([]frameEntry, frameCount),
		freeFrames: make([]Frame, frameCount),
	}

	for i := range t.freeFrames {
		t.freeFrames[i] = Frame(i)
	}

	return t
}

func (t *tables) FrameCount() int {
	return len(t.frameTable)
}

func (t *tables) FrameOf(page Page) (Frame, bool) {
	frame, found := t.pageTable[page]
	return frame, found
}

func (t *tables) PageIn(frame Frame) (Page, bool) {
	if !t.validFrame(frame) || !t.frameTable[frame].occupied {
		return 0, false
	}

	return t.frameTable[frame].page, true
}

func (t *tables) ResidentCount() int {
	return len(t.pageTable)
}

func (t *tables) OccupiedFrames() []Frame {
	frames := make([]Frame, 0, len(t.pageTable))
	for i, e := range t.frameTable {
		if e.occupied {
			frames = append(frames, Frame(i))
		}
	}

	return frames
}

func (t *tables) ResidentPages() []Page {
	pages := make([]Page, 0, len(t.pageTable))
	for p := range t.pageTable {
		pages = append(pages, p)
	}

	slices.Sort(pages)

	return pages
}

func (t *tables) validFrame(frame Frame) bool {
	return frame >= 0 && int(frame) < len(t.frameTable)
}

// popFreeFrame hands out the lowest free frame.
func (t *tables) popFreeFrame() (Frame, bool) {
	if len(t.freeFrames) == 0 {
		return 0, false
	}

	frame := t.freeFrames[0]
	t.freeFrames = t.freeFrames[1:]

	return frame, true
}

func (t *tables) insert(page Page, frame Frame) {
	if !t.validFrame(frame) {
		panic(inconsistent("load", "frame %d out of range", frame))
	}

	if t.frameTable[frame].occupied {
		panic(inconsistent("load", "frame %d already holds page %x",
			frame, t.frameTable[frame].page))
	}

	if f, found := t.pageTable[page]; found {
		panic(inconsistent("load", "page %x already resident in frame %d",
			page, f))
	}

	t.pageTable[page] = frame
	t.frameTable[frame] = frameEntry{occupied: true, page: page}
}

func (t *tables) remove(frame Frame) frameEntry {
	if !t.validFrame(frame) || !t.frameTable[frame].occupied {
		panic(inconsistent("evict", "frame %d is not occupied", frame))
	}

	entry := t.frameTable[frame]

	if f, found := t.pageTable[entry.page]; !found || f != frame {
		panic(inconsistent("evict",
			"frame %d holds page %x but the page table disagrees",
			frame, entry.page))
	}

	delete(t.pageTable, entry.page)
	t.frameTable[frame] = frameEntry{}

	return entry
}

func (t *tables) markDirty(page Page) {
	frame, found := t.pageTable[page]
	if !found {
		panic(inconsistent("write", "page %x is not resident", page))
	}

	t.frameTable[frame].dirty = true
}

func (t *tables) isDirty(page Page) bool {
	frame, found := t.pageTable[page]
	if !found {
		return false
	}

	return t.frameTable[frame].dirty
}

// check verifies that the page table and the frame table are inverses and
// that the free frames are exactly the unoccupied ones.
func (t *tables) check() error {
	occupied := 0

	for i, e := range t.frameTable {
		if !e.occupied {
			continue
		}

		occupied++

		f, found := t.pageTable[e.page]
		if !found || f != Frame(i) {
			return inconsistent("check",
				"frame %d holds page %x without a matching page table entry",
				i, e.page)
		}
	}

	if occupied != len(t.pageTable) {
		return inconsistent("check",
			"%d occupied frames but %d page table entries",
			occupied, len(t.pageTable))
	}

	if occupied+len(t.freeFrames) != len(t.frameTable) {
		return inconsistent("check",
			"%d occupied and %d free frames do not add up to %d",
			occupied, len(t.freeFrames), len(t.frameTable))
	}

	seen := make(map[Frame]bool, len(t.freeFrames))
	for _, f := range t.freeFrames {
		if !t.validFrame(f) || t.frameTable[f].occupied || seen[f] {
			return inconsistent("check", "free frame %d is not free", f)
		}

		seen[f] = true
	}

	return nil
}
