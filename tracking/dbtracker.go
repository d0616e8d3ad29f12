package tracking

import (
	"sync"

	"github.com/sarchlab/barbersim/datarecording"
	"github.com/sarchlab/barbersim/shop"
)

// VisitTableName is the table DBTracker writes finished visits into.
const VisitTableName = "visits"

// DBTracker stores one row per finished visit through a data recorder, so
// runs can be queried and compared after the fact.
type DBTracker struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracker creates a new DBTracker and prepares the visit table on the
// recorder.
func NewDBTracker(backend datarecording.DataRecorder) *DBTracker {
	backend.CreateTable(VisitTableName, VisitEntry{})

	return &DBTracker{backend: backend}
}

// Terminate flushes everything the tracker has buffered.
func (t *DBTracker) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}

// CustomerArrived does nothing; only finished visits become rows.
func (t *DBTracker) CustomerArrived(_ shop.Customer) {
	// Do nothing
}

// ServiceStarted does nothing.
func (t *DBTracker) ServiceStarted(_ shop.Customer, _ shop.Barber) {
	// Do nothing
}

// ServiceCompleted records a served visit.
func (t *DBTracker) ServiceCompleted(c shop.Customer, _ shop.Barber) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(VisitTableName, servedVisit(c))
}

// CustomerRejected records a turned-away visit.
func (t *DBTracker) CustomerRejected(
	c shop.Customer,
	reason shop.RejectReason,
) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(VisitTableName, rejectedVisit(c, reason))
}
