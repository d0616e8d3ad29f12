package tracking

import (
	"log"

	"github.com/sarchlab/barbersim/shop"
)

// LogTracker writes every shop event into a logger, one line per event.
type LogTracker struct {
	*log.Logger
}

// NewLogTracker returns a new LogTracker which will write into the logger.
func NewLogTracker(logger *log.Logger) *LogTracker {
	t := new(LogTracker)
	t.Logger = logger

	return t
}

// CustomerArrived logs an arrival.
func (t *LogTracker) CustomerArrived(c shop.Customer) {
	t.Printf("%.4f, arrive, %s", c.ArrivalTime, c.Name)
}

// ServiceStarted logs a haircut start.
func (t *LogTracker) ServiceStarted(c shop.Customer, b shop.Barber) {
	t.Printf("%.4f, start, %s -> barber %d",
		c.ServiceStartTime, c.Name, b.Label)
}

// ServiceCompleted logs a finished haircut.
func (t *LogTracker) ServiceCompleted(c shop.Customer, b shop.Barber) {
	t.Printf("%.4f, done, %s <- barber %d",
		c.ServiceEndTime, c.Name, b.Label)
}

// CustomerRejected logs a turned-away customer.
func (t *LogTracker) CustomerRejected(
	c shop.Customer,
	reason shop.RejectReason,
) {
	t.Printf("%.4f, reject, %s (%s)", c.DepartureTime, c.Name, reason)
}
