package tracking

import (
	"sync"

	"github.com/sarchlab/barbersim/shop"
)

// WaitTimeTracker collects how long customers sit in the waiting queue
// before their haircut starts. The average is maintained incrementally, so
// the tracker stays O(1) in memory no matter how long the run is.
type WaitTimeTracker struct {
	lock sync.Mutex

	averageWait shop.VTimeInSec
	maxWait     shop.VTimeInSec
	count       uint64
}

// NewWaitTimeTracker creates a new WaitTimeTracker.
func NewWaitTimeTracker() *WaitTimeTracker {
	return &WaitTimeTracker{}
}

// AverageWait returns the mean wait over all started haircuts.
func (t *WaitTimeTracker) AverageWait() shop.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.averageWait
}

// MaxWait returns the longest wait seen so far.
func (t *WaitTimeTracker) MaxWait() shop.VTimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.maxWait
}

// TotalCount returns the number of waits that entered the average.
func (t *WaitTimeTracker) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.count
}

// CustomerArrived does nothing.
func (t *WaitTimeTracker) CustomerArrived(_ shop.Customer) {
	// Do nothing
}

// ServiceStarted folds the customer's wait into the running average.
func (t *WaitTimeTracker) ServiceStarted(c shop.Customer, _ shop.Barber) {
	wait := c.WaitTime()

	t.lock.Lock()
	defer t.lock.Unlock()

	t.averageWait = shop.VTimeInSec(
		(float64(t.averageWait)*float64(t.count) + float64(wait)) /
			float64(t.count+1))
	t.count++

	if wait > t.maxWait {
		t.maxWait = wait
	}
}

// ServiceCompleted does nothing.
func (t *WaitTimeTracker) ServiceCompleted(_ shop.Customer, _ shop.Barber) {
	// Do nothing
}

// CustomerRejected does nothing; a rejected customer never waits to the end.
func (t *WaitTimeTracker) CustomerRejected(
	_ shop.Customer,
	_ shop.RejectReason,
) {
	// Do nothing
}
