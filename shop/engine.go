package shop

import (
	"fmt"
	"sync"
)

// HookPosCustomerArrive marks the creation of a customer, before admission.
var HookPosCustomerArrive = &HookPos{Name: "Customer Arrive"}

// HookPosServiceStart marks a customer moving into a barber's chair. The
// HookCtx Detail carries the Barber.
var HookPosServiceStart = &HookPos{Name: "Service Start"}

// HookPosServiceComplete marks a finished haircut. The HookCtx Detail
// carries the Barber.
var HookPosServiceComplete = &HookPos{Name: "Service Complete"}

// HookPosCustomerReject marks a customer turned away. The HookCtx Detail
// carries the RejectReason.
var HookPosCustomerReject = &HookPos{Name: "Customer Reject"}

// An Engine owns the complete state of one simulated barbershop and applies
// every state transition to it. All commands are serialized through one
// internal lock; everything readers get back is a copy, never the engine's
// own storage.
//
// The engine has no clock of its own. An external driver feeds it time
// deltas through Advance; pausing is simply not calling Advance.
type Engine struct {
	HookableBase
	sync.Mutex

	cfg Config

	now     VTimeInSec
	barbers []*Barber
	queue   *waitingQueue

	inService []*Customer
	served    []*Customer
	rejected  []*Customer

	nextCustomerID int
	nextBarberID   int

	serviceDuration VTimeInSec
	arrivalRate     float64
	speed           float64

	arrivals *ArrivalGenerator
	nameFor  func(id int) string
}

// Initialize resets the shop to an empty state: no customers anywhere,
// simulated time 0, the customer ID counter back at 1, and a fresh pool of
// sleeping barbers. Tunable parameters (service duration, arrival rate,
// speed) keep their current values.
func (e *Engine) Initialize(numBarbers, numChairs int) error {
	if numBarbers <= 0 {
		return fmt.Errorf("%w: barber count %d",
			ErrInvalidArgument, numBarbers)
	}

	if numChairs <= 0 {
		return fmt.Errorf("%w: chair count %d",
			ErrInvalidArgument, numChairs)
	}

	e.Lock()
	defer e.Unlock()

	e.now = 0
	e.queue = newWaitingQueue(e.cfg.clampChairs(numChairs))
	e.inService = nil
	e.served = nil
	e.rejected = nil
	e.nextCustomerID = 1

	e.barbers = nil
	e.nextBarberID = 1
	for i := 0; i < e.cfg.clampBarbers(numBarbers); i++ {
		e.appendBarber()
	}

	return nil
}

// Advance moves the simulated clock forward by deltaTime and applies every
// transition that falls inside the step: haircuts that end, freed barbers
// picking the next customer from the queue, and at most one stochastic
// walk-in. Completions are resolved before the walk-in, so a chair freed at
// exactly the step boundary can be taken by the same step's arrival.
//
// An invalid delta leaves the state untouched.
func (e *Engine) Advance(deltaTime VTimeInSec) error {
	if deltaTime < 0 {
		return fmt.Errorf("%w: negative time delta %f",
			ErrInvalidArgument, deltaTime)
	}

	e.Lock()
	defer e.Unlock()

	newTime := e.now + deltaTime
	e.completeFinishedServices(newTime)
	e.now = newTime

	if e.arrivals.ShouldArrive(e.arrivalRate, deltaTime) {
		e.admit(e.newCustomer(""))
	}

	return nil
}

// AddCustomer books one customer right now, exactly like an organic walk-in:
// the same admission rule decides between immediate service, a chair, and
// rejection. An empty name gets a generated one. The returned copy shows the
// outcome in its State.
func (e *Engine) AddCustomer(name string) Customer {
	e.Lock()
	defer e.Unlock()

	return e.admit(e.newCustomer(name))
}

// SetBarberCount resizes the pool towards n, clamped to the configured
// range. Growth appends sleeping barbers with fresh stable IDs. A shrink
// removes sleeping barbers starting from the highest label; barbers that are
// mid-haircut are never interrupted, so the shrink is silently capped at the
// idle capacity available. The resulting pool size is returned.
func (e *Engine) SetBarberCount(n int) (int, error) {
	if n <= 0 {
		return e.BarberCount(), fmt.Errorf("%w: barber count %d",
			ErrInvalidArgument, n)
	}

	e.Lock()
	defer e.Unlock()

	n = e.cfg.clampBarbers(n)

	for len(e.barbers) < n {
		e.appendBarber()
	}

	if len(e.barbers) > n {
		e.shrinkBarberPool(n)
	}

	return len(e.barbers), nil
}

// SetChairCount resizes the waiting queue capacity towards n, clamped to the
// configured range. When the queue no longer fits, the excess customers are
// evicted from the tail, most recently arrived first, into the Rejected
// state. The resulting capacity is returned.
func (e *Engine) SetChairCount(n int) (int, error) {
	if n <= 0 {
		return e.ChairCapacity(), fmt.Errorf("%w: chair count %d",
			ErrInvalidArgument, n)
	}

	e.Lock()
	defer e.Unlock()

	evicted := e.queue.SetCapacity(e.cfg.clampChairs(n))
	for _, c := range evicted {
		c.State = CustomerRejected
		c.DepartureTime = e.now
		e.rejected = append(e.rejected, c)
		e.invokeHook(HookPosCustomerReject, *c, RejectEvicted)
	}

	return e.queue.Capacity(), nil
}

// SetServiceDuration changes how long one haircut takes. Effective from the
// next assignment; haircuts already underway keep their end time.
func (e *Engine) SetServiceDuration(d VTimeInSec) error {
	if d <= 0 {
		return fmt.Errorf("%w: service duration %f", ErrInvalidArgument, d)
	}

	e.Lock()
	defer e.Unlock()

	e.serviceDuration = d

	return nil
}

// SetArrivalRate changes the expected number of walk-ins per simulated
// minute. Zero switches organic arrivals off.
func (e *Engine) SetArrivalRate(perMinute float64) error {
	if perMinute < 0 {
		return fmt.Errorf("%w: arrival rate %f",
			ErrInvalidArgument, perMinute)
	}

	e.Lock()
	defer e.Unlock()

	e.arrivalRate = perMinute

	return nil
}

// SetSimulationSpeed changes the playback speed multiplier. The engine only
// stores it: drivers read the value to scale wall-clock deltas before
// calling Advance, so simulated time always remains the exact sum of the
// deltas applied.
func (e *Engine) SetSimulationSpeed(multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("%w: simulation speed %f",
			ErrInvalidArgument, multiplier)
	}

	e.Lock()
	defer e.Unlock()

	e.speed = multiplier

	return nil
}

// CurrentTime returns the simulated time.
func (e *Engine) CurrentTime() VTimeInSec {
	e.Lock()
	defer e.Unlock()

	return e.now
}

// BarberCount returns the current pool size.
func (e *Engine) BarberCount() int {
	e.Lock()
	defer e.Unlock()

	return len(e.barbers)
}

// ChairCapacity returns the current number of waiting chairs.
func (e *Engine) ChairCapacity() int {
	e.Lock()
	defer e.Unlock()

	return e.queue.Capacity()
}

// ServiceDuration returns the configured haircut duration.
func (e *Engine) ServiceDuration() VTimeInSec {
	e.Lock()
	defer e.Unlock()

	return e.serviceDuration
}

// ArrivalRatePerMinute returns the configured walk-in rate.
func (e *Engine) ArrivalRatePerMinute() float64 {
	e.Lock()
	defer e.Unlock()

	return e.arrivalRate
}

// SimulationSpeed returns the playback speed multiplier.
func (e *Engine) SimulationSpeed() float64 {
	e.Lock()
	defer e.Unlock()

	return e.speed
}

// completeFinishedServices settles every haircut whose end time falls at or
// before newTime, walking the pool in ascending label order so the outcome
// is deterministic. Each freed barber immediately pulls the head of the
// queue, or goes to sleep if nobody is waiting. Departure times use the
// exact service end, not newTime, so long steps do not drift history.
func (e *Engine) completeFinishedServices(newTime VTimeInSec) {
	for _, b := range e.barbers {
		if b.State != BarberWorking || b.ServiceEndTime > newTime {
			continue
		}

		e.finishService(b)
		e.handOverNextCustomer(b, newTime)
	}
}

func (e *Engine) finishService(b *Barber) {
	c := e.takeFromInService(b.CurrentCustomerID)

	c.State = CustomerServed
	c.DepartureTime = c.ServiceEndTime
	e.served = append(e.served, c)

	b.TotalServed++

	e.invokeHook(HookPosServiceComplete, *c, *b)
}

func (e *Engine) handOverNextCustomer(b *Barber, newTime VTimeInSec) {
	next := e.queue.DequeueHead()
	if next == nil {
		b.State = BarberSleeping
		b.CurrentCustomerID = 0
		b.ServiceStartTime = TimeUnset
		b.ServiceEndTime = TimeUnset

		return
	}

	e.beginService(b, next, newTime)
}

// admit applies the admission rule to a freshly created customer: the
// lowest-label sleeping barber wins, then a free chair, then rejection. Both
// organic walk-ins and manual bookings go through this one path.
func (e *Engine) admit(c *Customer) Customer {
	e.invokeHook(HookPosCustomerArrive, *c, nil)

	if b := e.firstSleepingBarber(); b != nil {
		e.beginService(b, c, c.ArrivalTime)
		return *c
	}

	if e.queue.CanEnqueue() {
		e.queue.Enqueue(c)
		return *c
	}

	c.State = CustomerRejected
	c.DepartureTime = c.ArrivalTime
	e.rejected = append(e.rejected, c)
	e.invokeHook(HookPosCustomerReject, *c, RejectQueueFull)

	return *c
}

func (e *Engine) beginService(b *Barber, c *Customer, at VTimeInSec) {
	c.State = CustomerInService
	c.ServiceStartTime = at
	c.ServiceEndTime = at + e.serviceDuration
	c.AssignedBarberID = b.ID
	c.QueuePosition = PositionNone
	e.inService = append(e.inService, c)

	b.State = BarberWorking
	b.CurrentCustomerID = c.ID
	b.ServiceStartTime = at
	b.ServiceEndTime = c.ServiceEndTime

	e.invokeHook(HookPosServiceStart, *c, *b)
}

func (e *Engine) newCustomer(name string) *Customer {
	c := &Customer{
		ID:    e.nextCustomerID,
		Name:  name,
		State: CustomerWaiting,

		ArrivalTime:      e.now,
		ServiceStartTime: TimeUnset,
		ServiceEndTime:   TimeUnset,
		DepartureTime:    TimeUnset,

		QueuePosition: PositionNone,
	}
	e.nextCustomerID++

	if c.Name == "" {
		c.Name = e.nameFor(c.ID)
	}

	return c
}

// firstSleepingBarber returns the sleeping barber with the lowest label, or
// nil when everybody is working. The pool is kept in label order, so the
// first hit wins.
func (e *Engine) firstSleepingBarber() *Barber {
	for _, b := range e.barbers {
		if b.State == BarberSleeping {
			return b
		}
	}

	return nil
}

func (e *Engine) appendBarber() {
	b := &Barber{
		ID:    e.nextBarberID,
		Label: len(e.barbers) + 1,
		State: BarberSleeping,

		ServiceStartTime: TimeUnset,
		ServiceEndTime:   TimeUnset,
	}
	e.nextBarberID++

	e.barbers = append(e.barbers, b)
}

// shrinkBarberPool removes sleeping barbers from the highest label downward
// until the pool reaches target, then renumbers the labels 1..M. Working
// barbers are skipped, which may leave the pool above target; recorded
// history is never touched because it references stable IDs.
func (e *Engine) shrinkBarberPool(target int) {
	for i := len(e.barbers) - 1; i >= 0 && len(e.barbers) > target; i-- {
		if e.barbers[i].State != BarberSleeping {
			continue
		}

		e.barbers = append(e.barbers[:i], e.barbers[i+1:]...)
	}

	e.relabelBarbers()
}

func (e *Engine) relabelBarbers() {
	for i, b := range e.barbers {
		b.Label = i + 1
	}
}

func (e *Engine) takeFromInService(customerID int) *Customer {
	for i, c := range e.inService {
		if c.ID != customerID {
			continue
		}

		e.inService = append(e.inService[:i], e.inService[i+1:]...)

		return c
	}

	panic(fmt.Sprintf("customer %d is not in service", customerID))
}

func (e *Engine) invokeHook(pos *HookPos, item, detail interface{}) {
	if e.NumHooks() == 0 {
		return
	}

	e.InvokeHook(HookCtx{
		Domain: e,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
