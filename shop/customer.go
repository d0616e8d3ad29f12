package shop

// PositionNone marks a customer that does not occupy a waiting-queue slot.
const PositionNone = -1

// CustomerState is the lifecycle state of a customer.
type CustomerState int

// The four states a customer can be in. Served and Rejected are terminal.
const (
	CustomerWaiting CustomerState = iota
	CustomerInService
	CustomerServed
	CustomerRejected
)

// String returns the name of the state.
func (s CustomerState) String() string {
	switch s {
	case CustomerWaiting:
		return "Waiting"
	case CustomerInService:
		return "InService"
	case CustomerServed:
		return "Served"
	case CustomerRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the state by name rather than by number.
func (s CustomerState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a state encoded by name.
func (s *CustomerState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Waiting"`:
		*s = CustomerWaiting
	case `"InService"`:
		*s = CustomerInService
	case `"Served"`:
		*s = CustomerServed
	case `"Rejected"`:
		*s = CustomerRejected
	default:
		return ErrInvalidArgument
	}

	return nil
}

// RejectReason tells why a customer ended up in the Rejected state.
type RejectReason int

const (
	// RejectQueueFull marks a customer turned away at arrival because every
	// chair was taken.
	RejectQueueFull RejectReason = iota

	// RejectEvicted marks a queued customer pushed out by a chair-count
	// decrease.
	RejectEvicted
)

// String returns the name of the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectQueueFull:
		return "QueueFull"
	case RejectEvicted:
		return "Evicted"
	default:
		return "Unknown"
	}
}

// A Customer is one visitor of the shop. IDs grow monotonically from 1 and
// are never reused. Time fields that do not apply yet hold TimeUnset;
// AssignedBarberID holds the stable ID of the serving barber and is frozen
// once set, so history stays unambiguous even after the pool is resized.
type Customer struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	State CustomerState `json:"state"`

	ArrivalTime      VTimeInSec `json:"arrival_time"`
	ServiceStartTime VTimeInSec `json:"service_start_time"`
	ServiceEndTime   VTimeInSec `json:"service_end_time"`
	DepartureTime    VTimeInSec `json:"departure_time"`

	AssignedBarberID int `json:"assigned_barber_id"`
	QueuePosition    int `json:"queue_position"`
}

// WaitTime returns how long the customer sat in the waiting queue. It is only
// meaningful once service has started; before that it returns 0.
func (c Customer) WaitTime() VTimeInSec {
	if c.ServiceStartTime == TimeUnset {
		return 0
	}

	return c.ServiceStartTime - c.ArrivalTime
}
