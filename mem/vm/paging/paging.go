// Package paging models the page-replacement layer of a virtual memory
// manager. A Manager keeps a page table, a frame table, and a pool of free
// frames consistent while a trace of page reads and writes is replayed
// against it. When no frame is free, a pluggable Policy chooses the victim.
package paging

import "fmt"

// A Page identifies a logical page. Valid pages are non-negative.
type Page int64

// A Frame is the index of a physical frame, in [0, frameCount).
type Frame int

// Stats are the cumulative counters of a Manager.
type Stats struct {
	Faults     uint64 `json:"faults"`
	DiskReads  uint64 `json:"disk_reads"`
	DiskWrites uint64 `json:"disk_writes"`
}

func (s Stats) String() string {
	return fmt.Sprintf("faults=%d reads=%d writes=%d",
		s.Faults, s.DiskReads, s.DiskWrites)
}

// Residency is a read-only view of which page lives in which frame. Policies
// receive it when they need to consult the tables. It must not be retained
// beyond the call that handed it out.
type Residency interface {
	// FrameCount returns the number of physical frames.
	FrameCount() int

	// FrameOf returns the frame that holds the page.
	FrameOf(page Page) (Frame, bool)

	// PageIn returns the page resident in the frame.
	PageIn(frame Frame) (Page, bool)

	// ResidentCount returns the number of resident pages.
	ResidentCount() int

	// OccupiedFrames returns the occupied frames in ascending order.
	OccupiedFrames() []Frame

	// ResidentPages returns the resident pages in ascending order.
	ResidentPages() []Page
}

// FrameSnapshot describes one frame at the time a Snapshot is taken.
type FrameSnapshot struct {
	Frame    Frame `json:"frame"`
	Occupied bool  `json:"occupied"`
	Page     Page  `json:"page"`
	Dirty    bool  `json:"dirty"`
}

// A Snapshot is a copy of the externally visible state of a Manager.
type Snapshot struct {
	Name       string          `json:"name"`
	Policy     string          `json:"policy"`
	FrameCount int             `json:"frame_count"`
	Stats      Stats           `json:"stats"`
	Frames     []FrameSnapshot `json:"frames"`
}
