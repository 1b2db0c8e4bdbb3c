package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClockPolicy", func() {
	var (
		t     *tables
		clock *ClockPolicy
	)

	load := func(page Page, frame Frame) {
		t.insert(page, frame)
		clock.PageLoaded(page, frame)
	}

	BeforeEach(func() {
		t = newTables(4)
		clock = NewClockPolicy(4)
	})

	It("should start with the hand at frame 0", func() {
		Expect(clock.Name()).To(Equal("clock"))
		Expect(clock.Hand()).To(Equal(Frame(0)))
	})

	It("should set the reference bit on load and on access", func() {
		load(10, 2)
		Expect(clock.Referenced(2)).To(BeTrue())

		clock.referenced[2] = false
		clock.UpdateAccessInfo(t, 10, true)
		Expect(clock.Referenced(2)).To(BeTrue())
	})

	It("should ignore accesses to pages that are not resident", func() {
		clock.UpdateAccessInfo(t, 99, false)

		Expect(clock.referenced).To(Equal([]bool{false, false, false, false}))
	})

	It("should pick the first unreferenced frame and move past it", func() {
		load(10, 0)
		load(11, 1)
		load(12, 2)
		load(13, 3)
		clock.referenced[2] = false

		frame, found := clock.SelectVictim(t)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(2)))
		Expect(clock.Hand()).To(Equal(Frame(3)))
		Expect(clock.Referenced(0)).To(BeFalse())
		Expect(clock.Referenced(1)).To(BeFalse())
		Expect(clock.Referenced(3)).To(BeTrue())
	})

	It("should skip free frames", func() {
		load(10, 3)
		clock.referenced[3] = false

		frame, found := clock.SelectVictim(t)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(3)))
		Expect(clock.Hand()).To(Equal(Frame(0)))
	})

	It("should find a victim within two revolutions", func() {
		for i := 0; i < 4; i++ {
			load(Page(20+i), Frame(i))
		}
		clock.hand = 1

		frame, found := clock.SelectVictim(t)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(Frame(1)))
		Expect(clock.Hand()).To(Equal(Frame(2)))
		Expect(clock.referenced).To(Equal([]bool{false, false, false, false}))
	})

	It("should report when no frame is occupied", func() {
		_, found := clock.SelectVictim(t)
		Expect(found).To(BeFalse())
	})

	It("should clear the bit of an evicted frame", func() {
		load(10, 1)
		t.remove(1)
		clock.PageEvicted(10, 1)

		Expect(clock.Referenced(1)).To(BeFalse())
		Expect(clock.CheckBookkeeping(t)).To(Succeed())
	})

	It("should report bits left on free frames", func() {
		clock.referenced[1] = true

		Expect(clock.CheckBookkeeping(t)).To(MatchError(ErrInternalInconsistency))
	})
})
