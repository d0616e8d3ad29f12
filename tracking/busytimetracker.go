package tracking

import (
	"sync"

	"github.com/sarchlab/barbersim/shop"
)

// BusyTimeTracker accumulates the time each barber spends cutting hair,
// keyed by the barber's stable ID so pool resizes do not mix up the books.
// A barber serves one customer at a time, so the per-barber busy time is a
// plain sum of service durations.
type BusyTimeTracker struct {
	lock       sync.Mutex
	timeTeller shop.TimeTeller

	busyTime map[int]shop.VTimeInSec
}

// NewBusyTimeTracker creates a new BusyTimeTracker that measures elapsed
// time through timeTeller.
func NewBusyTimeTracker(timeTeller shop.TimeTeller) *BusyTimeTracker {
	return &BusyTimeTracker{
		timeTeller: timeTeller,
		busyTime:   make(map[int]shop.VTimeInSec),
	}
}

// BusyTime returns the accumulated service time of one barber.
func (t *BusyTimeTracker) BusyTime(barberID int) shop.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.busyTime[barberID]
}

// TotalBusyTime returns the accumulated service time of the whole pool.
func (t *BusyTimeTracker) TotalBusyTime() shop.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	var total shop.VTimeInSec
	for _, bt := range t.busyTime {
		total += bt
	}

	return total
}

// Utilization returns the fraction of the simulated time so far that one
// barber spent working.
func (t *BusyTimeTracker) Utilization(barberID int) float64 {
	elapsed := t.timeTeller.CurrentTime()
	if elapsed <= 0 {
		return 0
	}

	return float64(t.BusyTime(barberID)) / float64(elapsed)
}

// CustomerArrived does nothing.
func (t *BusyTimeTracker) CustomerArrived(_ shop.Customer) {
	// Do nothing
}

// ServiceStarted does nothing; time is booked on completion.
func (t *BusyTimeTracker) ServiceStarted(_ shop.Customer, _ shop.Barber) {
	// Do nothing
}

// ServiceCompleted books the haircut's duration on the serving barber.
func (t *BusyTimeTracker) ServiceCompleted(c shop.Customer, b shop.Barber) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.busyTime[b.ID] += c.ServiceEndTime - c.ServiceStartTime
}

// CustomerRejected does nothing.
func (t *BusyTimeTracker) CustomerRejected(
	_ shop.Customer,
	_ shop.RejectReason,
) {
	// Do nothing
}
