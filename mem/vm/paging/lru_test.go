package paging

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRUPolicy", func() {
	var (
		t   *tables
		lru *LRUPolicy
		buf *bytes.Buffer
	)

	load := func(page Page, frame Frame) {
		t.insert(page, frame)
		lru.PageLoaded(page, frame)
	}

	BeforeEach(func() {
		t = newTables(3)
		buf = new(bytes.Buffer)
		lru = NewLRUPolicy().WithLogger(log.New(buf, "", 0))
	})

	It("should order pages by load", func() {
		load(5, 0)
		load(6, 1)
		load(7, 2)

		Expect(lru.Name()).To(Equal("lru"))
		Expect(lru.Order()).To(Equal([]Page{5, 6, 7}))

		frame, found := lru.SelectVictim(t)
		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(0)))
	})

	It("should move an accessed page to the back", func() {
		load(5, 0)
		load(6, 1)
		load(7, 2)

		lru.UpdateAccessInfo(t, 5, false)
		lru.UpdateAccessInfo(t, 6, true)

		Expect(lru.Order()).To(Equal([]Page{7, 5, 6}))

		frame, _ := lru.SelectVictim(t)
		Expect(frame).To(Equal(Frame(2)))
	})

	It("should forget an evicted page", func() {
		load(5, 0)
		load(6, 1)

		t.remove(0)
		lru.PageEvicted(5, 0)

		Expect(lru.Order()).To(Equal([]Page{6}))
		Expect(lru.CheckBookkeeping(t)).To(Succeed())
	})

	It("should ignore evictions of untracked pages", func() {
		load(5, 0)
		lru.PageEvicted(42, 2)

		Expect(lru.Order()).To(Equal([]Page{5}))
	})

	It("should fall back to the smallest resident page", func() {
		t.insert(9, 0)
		t.insert(4, 1)
		t.insert(8, 2)
		lru.PageLoaded(9, 0)

		frame, found := lru.SelectVictim(t)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(1)))
		Expect(buf.String()).To(ContainSubstring("falling back to page 4"))
		Expect(lru.CheckBookkeeping(t)).To(MatchError(ErrInternalInconsistency))
	})

	It("should fall back when the front page is stale", func() {
		lru.PageLoaded(1, 0)
		t.insert(3, 2)

		frame, found := lru.SelectVictim(t)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(2)))
		Expect(lru.CheckBookkeeping(t)).To(MatchError(ErrInternalInconsistency))
	})

	It("should skip evicted pages at the front without falling back", func() {
		lru.PageLoaded(1, 0)
		load(2, 1)
		load(3, 2)

		frame, found := lru.SelectVictim(t)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(1)))
		Expect(buf.String()).To(ContainSubstring("evicted page 1"))
		Expect(buf.String()).ToNot(ContainSubstring("falling back"))
		Expect(lru.Order()).To(Equal([]Page{2, 3}))
		Expect(lru.CheckBookkeeping(t)).To(Succeed())
	})

	It("should report when nothing is resident", func() {
		_, found := lru.SelectVictim(t)
		Expect(found).To(BeFalse())
	})
})
