package shop

// A Snapshot is a self-contained copy of the shop at one instant. It shares
// no storage with the engine, so callers can render or serialize it while
// the simulation keeps moving.
type Snapshot struct {
	Now VTimeInSec `json:"now"`

	Barbers []Barber `json:"barbers"`

	ChairCapacity int        `json:"chair_capacity"`
	Waiting       []Customer `json:"waiting"`

	InService []Customer `json:"in_service"`
	Served    []Customer `json:"served"`
	Rejected  []Customer `json:"rejected"`

	ServiceDuration      VTimeInSec `json:"service_duration"`
	ArrivalRatePerMinute float64    `json:"arrival_rate_per_minute"`
	SimulationSpeed      float64    `json:"simulation_speed"`
}

// Snapshot copies the complete shop state under the engine lock.
func (e *Engine) Snapshot() Snapshot {
	e.Lock()
	defer e.Unlock()

	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Now: e.now,

		Barbers: copyBarbers(e.barbers),

		ChairCapacity: e.queue.Capacity(),
		Waiting:       copyCustomers(e.queue.Customers()),

		InService: copyCustomers(e.inService),
		Served:    copyCustomers(e.served),
		Rejected:  copyCustomers(e.rejected),

		ServiceDuration:      e.serviceDuration,
		ArrivalRatePerMinute: e.arrivalRate,
		SimulationSpeed:      e.speed,
	}
}

func copyBarbers(src []*Barber) []Barber {
	out := make([]Barber, len(src))
	for i, b := range src {
		out[i] = *b
	}

	return out
}

func copyCustomers(src []*Customer) []Customer {
	out := make([]Customer, len(src))
	for i, c := range src {
		out[i] = *c
	}

	return out
}
