package sim

import (
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HookableBase", func() {
	var (
		domain *HookableBase
		posA   = &HookPos{Name: "A"}
		posB   = &HookPos{Name: "B"}
	)

	BeforeEach(func() {
		domain = NewHookableBase()
	})

	It("should invoke hooks in registration order", func() {
		calls := []string{}
		domain.AcceptHook(HookFunc(func(ctx HookCtx) {
			calls = append(calls, "first:"+ctx.Pos.Name)
		}))
		domain.AcceptHook(HookFunc(func(ctx HookCtx) {
			calls = append(calls, "second:"+ctx.Pos.Name)
		}))

		domain.InvokeHook(HookCtx{Domain: domain, Pos: posA, Item: 1})

		Expect(domain.NumHooks()).To(Equal(2))
		Expect(calls).To(Equal([]string{"first:A", "second:A"}))
	})

	It("should pass the item and detail through", func() {
		var got HookCtx
		domain.AcceptHook(HookFunc(func(ctx HookCtx) { got = ctx }))

		domain.InvokeHook(HookCtx{Domain: domain, Pos: posB, Item: "x", Detail: 7})

		Expect(got.Item).To(Equal("x"))
		Expect(got.Detail).To(Equal(7))
		Expect(got.Domain).To(BeIdenticalTo(domain))
	})

	It("should refuse nil hooks", func() {
		Expect(func() { domain.AcceptHook(nil) }).To(Panic())
	})

	It("should filter by position", func() {
		count := 0
		domain.AcceptHook(OnlyAt(HookFunc(func(HookCtx) { count++ }), posB))

		domain.InvokeHook(HookCtx{Pos: posA})
		domain.InvokeHook(HookCtx{Pos: posB})
		domain.InvokeHook(HookCtx{Pos: posB})

		Expect(count).To(Equal(2))
	})
})

var _ = Describe("LogHookBase", func() {
	It("should fall back to the standard logger", func() {
		base := MakeLogHookBase(nil)

		Expect(base.Logger).To(BeIdenticalTo(log.Default()))
	})
})
