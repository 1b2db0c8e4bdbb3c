package paging

// ClockPolicy is the second-chance approximation of LRU. A hand sweeps the
// frames in a circle. An occupied frame whose reference bit is set gets its
// bit cleared and is passed over; the first occupied frame with a clear bit
// is the victim.
type ClockPolicy struct {
	hand       Frame
	referenced []bool
}

// NewClockPolicy creates a ClockPolicy for frameCount frames, with the hand at
// frame 0.
func NewClockPolicy(frameCount int) *ClockPolicy {
	return &ClockPolicy{
		referenced: make([]bool, frameCount),
	}
}

// Name returns "clock".
func (c *ClockPolicy) Name() string {
	return string(PolicyClock)
}

// SelectVictim sweeps from the hand and leaves the hand just past the
// victim. Since the sweep clears every bit it passes, a victim is always found
// within two full revolutions when at least one frame is occupied.
func (c *ClockPolicy) SelectVictim(view Residency) (Frame, bool) {
	n := len(c.referenced)

	for step := 0; step < 2*n; step++ {
		frame := c.hand
		c.hand = (c.hand + 1) % Frame(n)

		if _, occupied := view.PageIn(frame); !occupied {
			continue
		}

		if c.referenced[frame] {
			c.referenced[frame] = false
			continue
		}

		return frame, true
	}

	return 0, false
}

// UpdateAccessInfo sets the reference bit of the page's frame. Reads and
// writes are treated alike.
func (c *ClockPolicy) UpdateAccessInfo(view Residency, page Page, _ bool) {
	frame, found := view.FrameOf(page)
	if !found {
		return
	}

	c.referenced[frame] = true
}

// PageLoaded counts the load as a reference.
func (c *ClockPolicy) PageLoaded(_ Page, frame Frame) {
	c.referenced[frame] = true
}

// PageEvicted clears the reference bit of the freed frame.
func (c *ClockPolicy) PageEvicted(_ Page, frame Frame) {
	c.referenced[frame] = false
}

// Hand returns the frame the hand currently points at.
func (c *ClockPolicy) Hand() Frame {
	return c.hand
}

// Referenced returns the reference bit of a frame.
func (c *ClockPolicy) Referenced(frame Frame) bool {
	return c.referenced[frame]
}

// CheckBookkeeping reports reference bits set on frames that hold no page.
func (c *ClockPolicy) CheckBookkeeping(view Residency) error {
	if len(c.referenced) != view.FrameCount() {
		return inconsistent("check clock", "%d reference bits for %d frames",
			len(c.referenced), view.FrameCount())
	}

	for i, ref := range c.referenced {
		if _, occupied := view.PageIn(Frame(i)); ref && !occupied {
			return inconsistent("check clock",
				"reference bit set on free frame %d", i)
		}
	}

	return nil
}
