package shop

// BarberState is the state of one service station.
type BarberState int

// A barber is either sleeping in the chair or working on a customer.
const (
	BarberSleeping BarberState = iota
	BarberWorking
)

// String returns the name of the state.
func (s BarberState) String() string {
	switch s {
	case BarberSleeping:
		return "Sleeping"
	case BarberWorking:
		return "Working"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the state by name rather than by number.
func (s BarberState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a state encoded by name.
func (s *BarberState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Sleeping"`:
		*s = BarberSleeping
	case `"Working"`:
		*s = BarberWorking
	default:
		return ErrInvalidArgument
	}

	return nil
}

// A Barber is one service station that processes one customer at a time.
//
// ID is stable: it is assigned when the barber joins the pool and never
// reused, so customer history can reference it across pool resizes. Label is
// what the shop displays, always renumbered to 1..N after the pool changes.
// CurrentCustomerID and the two time fields are set together when the barber
// starts working and cleared together when it goes back to sleep.
type Barber struct {
	ID    int         `json:"id"`
	Label int         `json:"label"`
	State BarberState `json:"state"`

	CurrentCustomerID int        `json:"current_customer_id"`
	ServiceStartTime  VTimeInSec `json:"service_start_time"`
	ServiceEndTime    VTimeInSec `json:"service_end_time"`

	TotalServed int `json:"total_served"`
}
