package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/barbersim/driver"
	"github.com/sarchlab/barbersim/shop"
)

var _ = Describe("Monitor", func() {
	var (
		engine *shop.Engine
		m      *Monitor
		router http.Handler
	)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		engine = shop.MakeBuilder().
			WithBarbers(1).
			WithChairs(3).
			WithServiceDuration(10).
			WithArrivalRate(0).
			Build()

		m = NewMonitor()
		m.RegisterEngine(engine)
		router = m.router()
	})

	It("should report the current time", func() {
		Expect(engine.Advance(1.5)).To(Succeed())

		rec := get("/api/now")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(`{"now":1.5000000000}`))
	})

	It("should serve the state snapshot", func() {
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")

		rec := get("/api/state")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var snapshot shop.Snapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &snapshot)).To(Succeed())
		Expect(snapshot.Barbers).To(HaveLen(1))
		Expect(snapshot.Barbers[0].State).To(Equal(shop.BarberWorking))
		Expect(snapshot.InService).To(HaveLen(1))
		Expect(snapshot.InService[0].Name).To(Equal("Alice"))
		Expect(snapshot.Waiting).To(HaveLen(1))
	})

	It("should serve statistics", func() {
		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		Expect(engine.Advance(10)).To(Succeed())
		Expect(engine.Advance(10)).To(Succeed())

		rec := get("/api/stats")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var stats shop.Stats
		Expect(json.Unmarshal(rec.Body.Bytes(), &stats)).To(Succeed())
		Expect(stats.Served).To(Equal(2))
		Expect(stats.InService).To(Equal(0))
		Expect(stats.AverageWaitTime).To(Equal(shop.VTimeInSec(5)))
	})

	It("should admit a walk-in customer", func() {
		rec := get("/api/customer?name=Alice")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var customer shop.Customer
		Expect(json.Unmarshal(rec.Body.Bytes(), &customer)).To(Succeed())
		Expect(customer.Name).To(Equal("Alice"))
		Expect(customer.State).To(Equal(shop.CustomerInService))
	})

	It("should resize the barber pool", func() {
		rec := get("/api/barbers/3")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(`{"barbers":3}`))
		Expect(engine.BarberCount()).To(Equal(3))
	})

	It("should reject an invalid barber count", func() {
		rec := get("/api/barbers/0")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(engine.BarberCount()).To(Equal(1))
	})

	It("should reject a non-numeric barber count", func() {
		rec := get("/api/barbers/lots")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should resize the waiting area", func() {
		rec := get("/api/chairs/5")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(`{"chairs":5}`))
		Expect(engine.ChairCapacity()).To(Equal(5))
	})

	It("should set the service duration", func() {
		rec := get("/api/duration/2.5")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(engine.ServiceDuration()).To(Equal(shop.VTimeInSec(2.5)))
	})

	It("should set the arrival rate", func() {
		rec := get("/api/rate/30")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(engine.ArrivalRatePerMinute()).To(Equal(30.0))
	})

	It("should set the simulation speed", func() {
		rec := get("/api/speed/4")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(engine.SimulationSpeed()).To(Equal(4.0))
	})

	Context("with a driver", func() {
		var d *driver.Driver

		BeforeEach(func() {
			d = driver.MakeBuilder().WithEngine(engine).Build()
			m.RegisterDriver(d)
			d.Start()
		})

		AfterEach(func() {
			d.Stop()
		})

		It("should pause and continue the simulation", func() {
			rec := get("/api/pause")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(d.IsPaused()).To(BeTrue())

			rec = get("/api/continue")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(d.IsPaused()).To(BeFalse())
		})
	})

	Context("with progress bars", func() {
		It("should list registered bars", func() {
			bar := m.CreateProgressBar("warm up", 100)
			bar.IncrementFinished(25)

			rec := get("/api/progress")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var bars []ProgressBar
			Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
			Expect(bars).To(HaveLen(1))
			Expect(bars[0].Name).To(Equal("warm up"))
			Expect(bars[0].Total).To(Equal(uint64(100)))
			Expect(bars[0].Finished).To(Equal(uint64(25)))
		})

		It("should drop completed bars", func() {
			bar := m.CreateProgressBar("warm up", 100)
			m.CompleteProgressBar(bar)

			rec := get("/api/progress")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("[]"))
		})
	})
})
