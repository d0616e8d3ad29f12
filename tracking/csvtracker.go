package tracking

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/barbersim/shop"
)

// CSVTracker appends one row per finished visit to a CSV file. Rows are
// buffered and flushed in batches; a final flush runs at exit.
type CSVTracker struct {
	path string
	file *os.File

	visits     []VisitEntry
	bufferSize int
}

// NewCSVTracker creates a new CSVTracker writing to path.
func NewCSVTracker(path string) *CSVTracker {
	return &CSVTracker{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the CSV file. If the file already exists, it will be
// overwritten.
func (t *CSVTracker) Init() {
	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file,
		"CustomerID, Name, Outcome, Reason, BarberID, "+
			"Arrival, ServiceStart, ServiceEnd, Departure, Wait\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// Flush writes the buffered rows out.
func (t *CSVTracker) Flush() {
	for _, v := range t.visits {
		fmt.Fprintf(t.file,
			"%d, %s, %s, %s, %d, %.10f, %.10f, %.10f, %.10f, %.10f\n",
			v.CustomerID,
			v.Name,
			v.Outcome,
			v.Reason,
			v.BarberID,
			v.ArrivalTime,
			v.ServiceStartTime,
			v.ServiceEndTime,
			v.DepartureTime,
			v.WaitTime,
		)
	}

	t.visits = nil
}

func (t *CSVTracker) write(v VisitEntry) {
	t.visits = append(t.visits, v)
	if len(t.visits) >= t.bufferSize {
		t.Flush()
	}
}

// CustomerArrived does nothing; only finished visits become rows.
func (t *CSVTracker) CustomerArrived(_ shop.Customer) {
	// Do nothing
}

// ServiceStarted does nothing.
func (t *CSVTracker) ServiceStarted(_ shop.Customer, _ shop.Barber) {
	// Do nothing
}

// ServiceCompleted records a served visit.
func (t *CSVTracker) ServiceCompleted(c shop.Customer, _ shop.Barber) {
	t.write(servedVisit(c))
}

// CustomerRejected records a turned-away visit.
func (t *CSVTracker) CustomerRejected(
	c shop.Customer,
	reason shop.RejectReason,
) {
	t.write(rejectedVisit(c, reason))
}
