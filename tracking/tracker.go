// Package tracking collects statistics and visit logs from a running shop by
// hooking into its lifecycle events.
package tracking

import "github.com/sarchlab/barbersim/shop"

// A Tracker consumes the lifecycle events of a shop. Implementations receive
// value copies and must not call back into the engine; everything they need
// is carried on the customer and barber themselves.
type Tracker interface {
	CustomerArrived(c shop.Customer)
	ServiceStarted(c shop.Customer, b shop.Barber)
	ServiceCompleted(c shop.Customer, b shop.Barber)
	CustomerRejected(c shop.Customer, reason shop.RejectReason)
}
