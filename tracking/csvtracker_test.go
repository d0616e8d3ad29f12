package tracking

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/barbersim/shop"
)

var _ = Describe("CSVTracker", func() {
	var (
		path    string
		tracker *CSVTracker
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "visits.csv")
		tracker = NewCSVTracker(path)
		tracker.Init()
	})

	readLines := func() []string {
		tracker.Flush()

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())

		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}

	It("should write a header on init", func() {
		lines := readLines()

		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(HavePrefix("CustomerID, Name, Outcome"))
	})

	It("should write one row per finished visit", func() {
		engine := busyShop()
		Track(engine, tracker)

		engine.AddCustomer("Alice")
		engine.AddCustomer("Bob")
		engine.AddCustomer("Carol")
		engine.AddCustomer("Dave")
		Expect(engine.Advance(10)).To(Succeed())

		lines := readLines()

		// Header, Dave's rejection, then Alice's completed visit.
		Expect(lines).To(HaveLen(3))
		Expect(lines[1]).To(ContainSubstring("Dave"))
		Expect(lines[1]).To(ContainSubstring("QueueFull"))
		Expect(lines[2]).To(ContainSubstring("Alice"))
		Expect(lines[2]).To(ContainSubstring("Served"))
	})

	It("should flush once the buffer fills up", func() {
		tracker.bufferSize = 2

		tracker.ServiceCompleted(
			shop.Customer{ID: 1, Name: "Alice"}, shop.Barber{ID: 1})

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.Count(string(data), "\n")).To(Equal(1))

		tracker.ServiceCompleted(
			shop.Customer{ID: 2, Name: "Bob"}, shop.Barber{ID: 1})

		data, err = os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.Count(string(data), "\n")).To(Equal(3))
	})
})
