package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RandomPolicy", func() {
	var t *tables

	BeforeEach(func() {
		t = newTables(4)
	})

	It("should only pick occupied frames", func() {
		t.insert(10, 1)
		t.insert(11, 3)
		p := NewRandomPolicy(3)

		seen := map[Frame]int{}
		for i := 0; i < 400; i++ {
			frame, found := p.SelectVictim(t)
			Expect(found).To(BeTrue())
			seen[frame]++
		}

		Expect(seen).To(HaveLen(2))
		Expect(seen).To(HaveKey(Frame(1)))
		Expect(seen).To(HaveKey(Frame(3)))
		Expect(seen[1]).To(BeNumerically(">", 100))
		Expect(seen[3]).To(BeNumerically(">", 100))
	})

	It("should replay the same choices with the same seed", func() {
		for i := 0; i < 4; i++ {
			t.insert(Page(i), Frame(i))
		}

		a := NewRandomPolicy(99)
		b := NewRandomPolicy(99)
		for i := 0; i < 50; i++ {
			fa, _ := a.SelectVictim(t)
			fb, _ := b.SelectVictim(t)
			Expect(fa).To(Equal(fb))
		}
	})

	It("should report when nothing is occupied", func() {
		_, found := NewRandomPolicy(1).SelectVictim(t)
		Expect(found).To(BeFalse())
	})
})
