package shop

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Engine hooks", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *Engine
		hook     *MockHook
		ctxs     []HookCtx
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = quietEngine()

		ctxs = nil
		hook = NewMockHook(mockCtrl)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx HookCtx) {
				ctxs = append(ctxs, ctx)
			}).
			AnyTimes()
		engine.AcceptHook(hook)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	at := func(pos *HookPos) []HookCtx {
		var out []HookCtx
		for _, ctx := range ctxs {
			if ctx.Pos == pos {
				out = append(out, ctx)
			}
		}

		return out
	}

	It("should trace a full service lifecycle", func() {
		engine.AddCustomer("Alice")
		Expect(engine.Advance(10)).To(Succeed())

		arrives := at(HookPosCustomerArrive)
		Expect(arrives).To(HaveLen(1))
		Expect(arrives[0].Item.(Customer).Name).To(Equal("Alice"))
		Expect(arrives[0].Item.(Customer).State).
			To(Equal(CustomerWaiting))

		starts := at(HookPosServiceStart)
		Expect(starts).To(HaveLen(1))
		Expect(starts[0].Item.(Customer).State).
			To(Equal(CustomerInService))
		Expect(starts[0].Detail.(Barber).ID).To(Equal(1))

		completes := at(HookPosServiceComplete)
		Expect(completes).To(HaveLen(1))
		Expect(completes[0].Item.(Customer).DepartureTime).
			To(Equal(VTimeInSec(10)))
		Expect(completes[0].Detail.(Barber).TotalServed).To(Equal(1))
	})

	It("should fire a start hook for each queue promotion", func() {
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		Expect(engine.Advance(10)).To(Succeed())

		starts := at(HookPosServiceStart)
		Expect(starts).To(HaveLen(2))
		Expect(starts[1].Item.(Customer).Name).To(Equal("Bob"))
		Expect(starts[1].Item.(Customer).ServiceStartTime).
			To(Equal(VTimeInSec(10)))
	})

	It("should report a full queue as a rejection", func() {
		for i := 0; i < 5; i++ {
			engine.AddCustomer("")
		}

		rejects := at(HookPosCustomerReject)
		Expect(rejects).To(HaveLen(1))
		Expect(rejects[0].Detail).To(Equal(RejectQueueFull))
		Expect(rejects[0].Item.(Customer).State).
			To(Equal(CustomerRejected))
	})

	It("should report chair evictions with their own reason", func() {
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		engine.AddCustomer("Carol")

		_, err := engine.SetChairCount(1)
		Expect(err).ToNot(HaveOccurred())

		rejects := at(HookPosCustomerReject)
		Expect(rejects).To(HaveLen(1))
		Expect(rejects[0].Detail).To(Equal(RejectEvicted))
		Expect(rejects[0].Item.(Customer).Name).To(Equal("Carol"))
	})

	It("should pass the engine as the hook domain", func() {
		engine.AddCustomer("Alice")

		Expect(ctxs[0].Domain).To(BeIdenticalTo(engine))
	})
})

var _ = Describe("HookableBase", func() {
	It("should keep hooks in attachment order", func() {
		hb := NewHookableBase()
		Expect(hb.NumHooks()).To(Equal(0))

		h1 := NewMockHook(gomock.NewController(GinkgoT()))
		h2 := NewMockHook(gomock.NewController(GinkgoT()))
		hb.AcceptHook(h1)
		hb.AcceptHook(h2)

		Expect(hb.NumHooks()).To(Equal(2))
		Expect(hb.Hooks()[0]).To(BeIdenticalTo(h1))
		Expect(hb.Hooks()[1]).To(BeIdenticalTo(h2))
	})
})
