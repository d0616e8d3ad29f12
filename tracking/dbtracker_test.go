package tracking

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/barbersim/datarecording"
)

var _ = Describe("DBTracker", func() {
	var (
		dbPath   string
		recorder datarecording.DataRecorder
		tracker  *DBTracker
	)

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "run")
		recorder = datarecording.New(dbPath)
		tracker = NewDBTracker(recorder)
	})

	AfterEach(func() {
		recorder.Close()
	})

	queryVisits := func() []*VisitEntry {
		tracker.Terminate()

		reader := datarecording.NewReader(dbPath)
		defer reader.Close()

		reader.MapTable(VisitTableName, VisitEntry{})
		results, _, err := reader.Query(
			context.Background(), VisitTableName,
			datarecording.QueryParams{OrderBy: "CustomerID"})
		Expect(err).ToNot(HaveOccurred())

		visits := make([]*VisitEntry, len(results))
		for i, r := range results {
			visits[i] = r.(*VisitEntry)
		}

		return visits
	}

	It("should create the visit table up front", func() {
		Expect(recorder.ListTables()).To(ContainElement(VisitTableName))
	})

	It("should store served and rejected visits", func() {
		engine := busyShop()
		Track(engine, tracker)

		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		engine.AddCustomer("Carol")
		engine.AddCustomer("Dave")
		Expect(engine.Advance(10)).To(Succeed())

		visits := queryVisits()

		Expect(visits).To(HaveLen(2))

		Expect(visits[0].Name).To(Equal("Alice"))
		Expect(visits[0].Outcome).To(Equal("Served"))
		Expect(visits[0].BarberID).To(Equal(1))
		Expect(visits[0].ServiceEndTime).To(Equal(10.0))
		Expect(visits[0].DepartureTime).To(Equal(10.0))

		Expect(visits[1].Name).To(Equal("Dave"))
		Expect(visits[1].Outcome).To(Equal("Rejected"))
		Expect(visits[1].Reason).To(Equal("QueueFull"))
		Expect(visits[1].DepartureTime).To(Equal(0.0))
	})

	It("should record the wait of promoted customers", func() {
		engine := busyShop()
		Track(engine, tracker)

		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		Expect(engine.Advance(10)).To(Succeed())
		Expect(engine.Advance(10)).To(Succeed())

		visits := queryVisits()

		Expect(visits).To(HaveLen(2))
		Expect(visits[1].Name).To(Equal("Bob"))
		Expect(visits[1].WaitTime).To(Equal(10.0))
	})
})
