package paging

import (
	"container/list"
	"log"
	"os"
)

// LRUPolicy evicts the resident page that has gone unused for the longest
// time. The recency order is kept in a doubly linked list, least recently
// used at the front, with a map from page to list element so that every
// update is O(1).
type LRUPolicy struct {
	order  *list.List
	index  map[Page]*list.Element
	logger *log.Logger
}

// NewLRUPolicy creates an empty LRUPolicy.
func NewLRUPolicy() *LRUPolicy {
	return &LRUPolicy{
		order:  list.New(),
		index:  make(map[Page]*list.Element),
		logger: log.New(os.Stderr, "paging: ", log.LstdFlags),
	}
}

// WithLogger sets where the policy reports broken bookkeeping.
func (p *LRUPolicy) WithLogger(logger *log.Logger) *LRUPolicy {
	p.logger = logger
	return p
}

// Name returns "lru".
func (p *LRUPolicy) Name() string {
	return string(PolicyLRU)
}

// SelectVictim returns the frame of the least recently used page. Entries at
// the front that are no longer resident are dropped and logged. The fallback
// only runs when a resident page is missing from the recency order.
func (p *LRUPolicy) SelectVictim(view Residency) (Frame, bool) {
	for front := p.order.Front(); front != nil; front = p.order.Front() {
		page := front.Value.(Page)

		frame, found := view.FrameOf(page)
		if !found {
			p.logger.Printf("%s: recency order tracks evicted page %x, dropping it",
				ErrInternalInconsistency.Kind, page)
			p.order.Remove(front)
			delete(p.index, page)

			continue
		}

		if p.order.Len() < view.ResidentCount() {
			break
		}

		return frame, true
	}

	return p.fallbackVictim(view)
}

// fallbackVictim only runs when the recency order and the page table
// disagree, which means a missed PageLoaded or PageEvicted call somewhere.
// The smallest resident page is chosen so that the outcome stays
// reproducible.
func (p *LRUPolicy) fallbackVictim(view Residency) (Frame, bool) {
	pages := view.ResidentPages()
	if len(pages) == 0 {
		return 0, false
	}

	p.logger.Printf(
		"%s: recency order tracks %d pages but %d are resident, "+
			"falling back to page %x",
		ErrInternalInconsistency.Kind, p.order.Len(), len(pages), pages[0])

	return view.FrameOf(pages[0])
}

// UpdateAccessInfo moves the page to the most recently used end. Reads and
// writes are treated alike.
func (p *LRUPolicy) UpdateAccessInfo(_ Residency, page Page, _ bool) {
	p.touch(page)
}

// PageLoaded counts the load as an access.
func (p *LRUPolicy) PageLoaded(page Page, _ Frame) {
	p.touch(page)
}

// PageEvicted drops the page from the recency order.
func (p *LRUPolicy) PageEvicted(page Page, _ Frame) {
	elem, found := p.index[page]
	if !found {
		return
	}

	p.order.Remove(elem)
	delete(p.index, page)
}

func (p *LRUPolicy) touch(page Page) {
	if elem, found := p.index[page]; found {
		p.order.MoveToBack(elem)
		return
	}

	p.index[page] = p.order.PushBack(page)
}

// Order returns the tracked pages from least to most recently used.
func (p *LRUPolicy) Order() []Page {
	pages := make([]Page, 0, p.order.Len())
	for e := p.order.Front(); e != nil; e = e.Next() {
		pages = append(pages, e.Value.(Page))
	}

	return pages
}

// CheckBookkeeping reports pages in the recency order that are not resident
// and resident pages missing from it.
func (p *LRUPolicy) CheckBookkeeping(view Residency) error {
	for page := range p.index {
		if _, found := view.FrameOf(page); !found {
			return inconsistent("check lru",
				"recency order tracks evicted page %x", page)
		}
	}

	if len(p.index) != view.ResidentCount() {
		return inconsistent("check lru",
			"recency order tracks %d pages but %d are resident",
			len(p.index), view.ResidentCount())
	}

	return nil
}
