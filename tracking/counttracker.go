package tracking

import (
	"sync"

	"github.com/sarchlab/barbersim/shop"
)

// CountTracker counts customers as they move through the shop.
type CountTracker struct {
	lock sync.Mutex

	arrived  uint64
	started  uint64
	served   uint64
	rejected map[shop.RejectReason]uint64
}

// NewCountTracker creates a new CountTracker.
func NewCountTracker() *CountTracker {
	return &CountTracker{
		rejected: make(map[shop.RejectReason]uint64),
	}
}

// Arrived returns the number of customers that showed up, including the
// ones that were later turned away.
func (t *CountTracker) Arrived() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.arrived
}

// Started returns the number of haircuts that began.
func (t *CountTracker) Started() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.started
}

// Served returns the number of completed haircuts.
func (t *CountTracker) Served() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.served
}

// Rejected returns the number of customers turned away for any reason.
func (t *CountTracker) Rejected() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	var total uint64
	for _, n := range t.rejected {
		total += n
	}

	return total
}

// RejectedFor returns the number of customers turned away for one reason.
func (t *CountTracker) RejectedFor(reason shop.RejectReason) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.rejected[reason]
}

// CustomerArrived counts an arrival.
func (t *CountTracker) CustomerArrived(_ shop.Customer) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.arrived++
}

// ServiceStarted counts a haircut start.
func (t *CountTracker) ServiceStarted(_ shop.Customer, _ shop.Barber) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.started++
}

// ServiceCompleted counts a completed haircut.
func (t *CountTracker) ServiceCompleted(_ shop.Customer, _ shop.Barber) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.served++
}

// CustomerRejected counts a rejection by reason.
func (t *CountTracker) CustomerRejected(
	_ shop.Customer,
	reason shop.RejectReason,
) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.rejected[reason]++
}
