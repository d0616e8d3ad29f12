package shop

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine state", func() {
	var engine *Engine

	BeforeEach(func() {
		engine = quietEngine()
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		Expect(engine.Advance(10)).To(Succeed())
	})

	It("should round-trip through State and RestoreState", func() {
		state := engine.State()

		restored := MakeBuilder().WithArrivalRate(0).Build()
		Expect(restored.RestoreState(state)).To(Succeed())

		Expect(restored.Snapshot()).To(Equal(engine.Snapshot()))
	})

	It("should continue counting customers where it left off", func() {
		state := engine.State()

		restored := MakeBuilder().WithArrivalRate(0).Build()
		Expect(restored.RestoreState(state)).To(Succeed())

		carol := restored.AddCustomer("Carol")
		Expect(carol.ID).To(Equal(3))
	})

	It("should keep running after a restore", func() {
		state := engine.State()

		restored := MakeBuilder().WithArrivalRate(0).Build()
		Expect(restored.RestoreState(state)).To(Succeed())
		Expect(restored.Advance(10)).To(Succeed())

		snapshot := restored.Snapshot()
		Expect(snapshot.Now).To(Equal(VTimeInSec(20)))
		Expect(snapshot.Served).To(HaveLen(2))
		Expect(snapshot.Barbers[0].State).To(Equal(BarberSleeping))
	})

	It("should refuse an inconsistent state", func() {
		state := engine.State()
		state.Barbers = nil

		restored := MakeBuilder().Build()
		before := restored.Snapshot()

		Expect(restored.RestoreState(state)).
			To(MatchError(ErrInvalidArgument))
		Expect(restored.Snapshot()).To(Equal(before))
	})

	It("should refuse a state with more waiters than chairs", func() {
		state := engine.State()
		state.ChairCapacity = 0

		restored := MakeBuilder().Build()

		Expect(restored.RestoreState(state)).
			To(MatchError(ErrInvalidArgument))
	})

	It("should refuse mismatched barbers and customers", func() {
		state := engine.State()
		state.InService = nil

		restored := MakeBuilder().Build()

		Expect(restored.RestoreState(state)).
			To(MatchError(ErrInvalidArgument))
	})
})
