package shop

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("should build an idle shop with the defaults", func() {
		engine := MakeBuilder().Build()

		snapshot := engine.Snapshot()
		Expect(snapshot.Now).To(Equal(VTimeInSec(0)))
		Expect(snapshot.Barbers).To(HaveLen(1))
		Expect(snapshot.ChairCapacity).To(Equal(3))
		Expect(snapshot.ServiceDuration).To(Equal(VTimeInSec(10)))
		Expect(snapshot.SimulationSpeed).To(Equal(1.0))
	})

	It("should apply every option", func() {
		engine := MakeBuilder().
			WithBarbers(2).
			WithChairs(5).
			WithServiceDuration(4).
			WithArrivalRate(12).
			WithSimulationSpeed(2).
			WithSeed(42).
			Build()

		snapshot := engine.Snapshot()
		Expect(snapshot.Barbers).To(HaveLen(2))
		Expect(snapshot.ChairCapacity).To(Equal(5))
		Expect(snapshot.ServiceDuration).To(Equal(VTimeInSec(4)))
		Expect(snapshot.ArrivalRatePerMinute).To(Equal(12.0))
		Expect(snapshot.SimulationSpeed).To(Equal(2.0))
	})

	It("should produce identical runs from the same seed", func() {
		run := func() Snapshot {
			engine := MakeBuilder().
				WithBarbers(2).
				WithChairs(4).
				WithServiceDuration(5).
				WithArrivalRate(40).
				WithSeed(7).
				Build()

			for i := 0; i < 200; i++ {
				Expect(engine.Advance(0.25)).To(Succeed())
			}

			return engine.Snapshot()
		}

		Expect(run()).To(Equal(run()))
	})

	It("should panic on invalid parameters", func() {
		Expect(func() {
			MakeBuilder().WithBarbers(0).Build()
		}).To(Panic())

		Expect(func() {
			MakeBuilder().WithServiceDuration(0).Build()
		}).To(Panic())

		Expect(func() {
			MakeBuilder().WithArrivalRate(-1).Build()
		}).To(Panic())

		Expect(func() {
			MakeBuilder().WithSimulationSpeed(0).Build()
		}).To(Panic())

		Expect(func() {
			MakeBuilder().WithNameFunc(nil).Build()
		}).To(Panic())
	})
})
