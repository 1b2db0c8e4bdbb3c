package paging

import "math/rand/v2"

// RandomPolicy evicts an occupied frame chosen uniformly at random. It keeps
// no bookkeeping besides its random source, so equal seeds replay equal
// eviction choices.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a RandomPolicy seeded with seed.
func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Name returns "random".
func (p *RandomPolicy) Name() string {
	return string(PolicyRandom)
}

// SelectVictim draws from the occupied frames, not from the pages.
func (p *RandomPolicy) SelectVictim(view Residency) (Frame, bool) {
	frames := view.OccupiedFrames()
	if len(frames) == 0 {
		return 0, false
	}

	return frames[p.rng.IntN(len(frames))], true
}

// UpdateAccessInfo does nothing.
func (p *RandomPolicy) UpdateAccessInfo(Residency, Page, bool) {}

// PageLoaded does nothing.
func (p *RandomPolicy) PageLoaded(Page, Frame) {}

// PageEvicted does nothing.
func (p *RandomPolicy) PageEvicted(Page, Frame) {}
