package shop

import "fmt"

// State is everything needed to rebuild a shop mid-run: the visible
// snapshot plus the ID counters that keep new customers and barbers from
// colliding with recorded history.
type State struct {
	Snapshot

	NextCustomerID int `json:"next_customer_id"`
	NextBarberID   int `json:"next_barber_id"`
}

// State captures a restorable copy of the engine.
func (e *Engine) State() State {
	e.Lock()
	defer e.Unlock()

	return State{
		Snapshot:       e.snapshotLocked(),
		NextCustomerID: e.nextCustomerID,
		NextBarberID:   e.nextBarberID,
	}
}

// RestoreState overwrites the engine with a previously captured state. The
// state is validated first; an invalid one leaves the engine untouched.
func (e *Engine) RestoreState(s State) error {
	if err := validateState(s); err != nil {
		return err
	}

	e.Lock()
	defer e.Unlock()

	e.now = s.Now

	e.barbers = make([]*Barber, len(s.Barbers))
	for i := range s.Barbers {
		b := s.Barbers[i]
		e.barbers[i] = &b
	}

	e.queue = newWaitingQueue(s.ChairCapacity)
	for i := range s.Waiting {
		c := s.Waiting[i]
		e.queue.Enqueue(&c)
	}

	e.inService = restoreCustomers(s.InService)
	e.served = restoreCustomers(s.Served)
	e.rejected = restoreCustomers(s.Rejected)

	e.nextCustomerID = s.NextCustomerID
	e.nextBarberID = s.NextBarberID

	e.serviceDuration = s.ServiceDuration
	e.arrivalRate = s.ArrivalRatePerMinute
	e.speed = s.SimulationSpeed

	return nil
}

func validateState(s State) error {
	if len(s.Barbers) == 0 {
		return fmt.Errorf("%w: state has no barbers", ErrInvalidArgument)
	}

	if s.ChairCapacity <= 0 {
		return fmt.Errorf("%w: chair capacity %d",
			ErrInvalidArgument, s.ChairCapacity)
	}

	if len(s.Waiting) > s.ChairCapacity {
		return fmt.Errorf("%w: %d waiting customers exceed %d chairs",
			ErrInvalidArgument, len(s.Waiting), s.ChairCapacity)
	}

	if s.ServiceDuration <= 0 {
		return fmt.Errorf("%w: service duration %f",
			ErrInvalidArgument, s.ServiceDuration)
	}

	if s.ArrivalRatePerMinute < 0 {
		return fmt.Errorf("%w: arrival rate %f",
			ErrInvalidArgument, s.ArrivalRatePerMinute)
	}

	if s.SimulationSpeed <= 0 {
		return fmt.Errorf("%w: simulation speed %f",
			ErrInvalidArgument, s.SimulationSpeed)
	}

	working := 0
	for _, b := range s.Barbers {
		if b.State == BarberWorking {
			working++
		}
	}

	if working != len(s.InService) {
		return fmt.Errorf(
			"%w: %d working barbers but %d customers in service",
			ErrInvalidArgument, working, len(s.InService))
	}

	return nil
}

func restoreCustomers(src []Customer) []*Customer {
	if len(src) == 0 {
		return nil
	}

	out := make([]*Customer, len(src))
	for i := range src {
		c := src[i]
		out[i] = &c
	}

	return out
}
