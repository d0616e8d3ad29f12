package tracking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/barbersim/shop"
)

var _ = Describe("WaitTimeTracker", func() {
	var (
		engine  *shop.Engine
		tracker *WaitTimeTracker
	)

	BeforeEach(func() {
		engine = busyShop()
		tracker = NewWaitTimeTracker()
		Track(engine, tracker)
	})

	It("should start out empty", func() {
		Expect(tracker.AverageWait()).To(Equal(shop.VTimeInSec(0)))
		Expect(tracker.MaxWait()).To(Equal(shop.VTimeInSec(0)))
		Expect(tracker.TotalCount()).To(Equal(uint64(0)))
	})

	It("should average the waits of started haircuts", func() {
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")

		// Alice starts at 0 with no wait; Bob is promoted at 10.
		Expect(engine.Advance(10)).To(Succeed())

		Expect(tracker.TotalCount()).To(Equal(uint64(2)))
		Expect(tracker.AverageWait()).To(Equal(shop.VTimeInSec(5)))
		Expect(tracker.MaxWait()).To(Equal(shop.VTimeInSec(10)))
	})

	It("should leave rejected customers out", func() {
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		engine.AddCustomer("Carol")
		engine.AddCustomer("Dave")

		Expect(tracker.TotalCount()).To(Equal(uint64(1)))
		Expect(tracker.AverageWait()).To(Equal(shop.VTimeInSec(0)))
	})
})
