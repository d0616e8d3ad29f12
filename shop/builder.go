package shop

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// Builder assembles engines. A zero-value Builder is not usable; start from
// MakeBuilder.
type Builder struct {
	cfg             Config
	numBarbers      int
	numChairs       int
	serviceDuration VTimeInSec
	arrivalRate     float64
	speed           float64
	src             RandSource
	nameFor         func(id int) string
}

// MakeBuilder returns a Builder with the default shop configuration.
func MakeBuilder() Builder {
	cfg := DefaultConfig()

	return Builder{
		cfg:             cfg,
		numBarbers:      cfg.DefaultBarbers,
		numChairs:       cfg.DefaultChairs,
		serviceDuration: cfg.DefaultServiceDuration,
		arrivalRate:     cfg.DefaultArrivalRate,
		speed:           cfg.DefaultSimulationSpeed,
		nameFor: func(id int) string {
			return fmt.Sprintf("Customer %d", id)
		},
	}
}

// WithConfig replaces the shop configuration, including the allowed barber
// and chair ranges.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithBarbers sets the initial barber pool size.
func (b Builder) WithBarbers(n int) Builder {
	b.numBarbers = n
	return b
}

// WithChairs sets the initial waiting queue capacity.
func (b Builder) WithChairs(n int) Builder {
	b.numChairs = n
	return b
}

// WithServiceDuration sets the initial haircut duration.
func (b Builder) WithServiceDuration(d VTimeInSec) Builder {
	b.serviceDuration = d
	return b
}

// WithArrivalRate sets the initial expected walk-ins per simulated minute.
func (b Builder) WithArrivalRate(perMinute float64) Builder {
	b.arrivalRate = perMinute
	return b
}

// WithSimulationSpeed sets the initial playback speed multiplier.
func (b Builder) WithSimulationSpeed(multiplier float64) Builder {
	b.speed = multiplier
	return b
}

// WithSeed makes the arrival stream reproducible.
func (b Builder) WithSeed(seed int64) Builder {
	b.src = rand.New(rand.NewSource(seed))
	return b
}

// WithRandSource injects the randomness behind organic arrivals. It
// overrides WithSeed.
func (b Builder) WithRandSource(src RandSource) Builder {
	b.src = src
	return b
}

// WithNameFunc replaces the generator used to name anonymous customers.
func (b Builder) WithNameFunc(f func(id int) string) Builder {
	b.nameFor = f
	return b
}

// Build creates the engine and initializes it to an empty shop.
func (b Builder) Build() *Engine {
	b.parametersMustBeValid()

	src := b.src
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		cfg:             b.cfg,
		serviceDuration: b.serviceDuration,
		arrivalRate:     b.arrivalRate,
		speed:           b.speed,
		arrivals:        NewArrivalGenerator(src),
		nameFor:         b.nameFor,
	}

	err := e.Initialize(b.numBarbers, b.numChairs)
	if err != nil {
		log.Panic(err)
	}

	return e
}

func (b Builder) parametersMustBeValid() {
	if err := b.cfg.validate(); err != nil {
		log.Panic(err)
	}

	if b.numBarbers <= 0 {
		log.Panicf("barber count %d must be positive", b.numBarbers)
	}

	if b.numChairs <= 0 {
		log.Panicf("chair count %d must be positive", b.numChairs)
	}

	if b.serviceDuration <= 0 {
		log.Panicf("service duration %f must be positive",
			b.serviceDuration)
	}

	if b.arrivalRate < 0 {
		log.Panicf("arrival rate %f must not be negative", b.arrivalRate)
	}

	if b.speed <= 0 {
		log.Panicf("simulation speed %f must be positive", b.speed)
	}

	if b.nameFor == nil {
		log.Panic("name function must not be nil")
	}
}
