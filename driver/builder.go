package driver

import (
	"log"
	"time"

	"github.com/sarchlab/barbersim/shop"
)

// Builder assembles drivers.
type Builder struct {
	engine   *shop.Engine
	maxStep  shop.VTimeInSec
	interval time.Duration
}

// MakeBuilder returns a Builder with sensible pacing defaults: ticks every
// 50 milliseconds, at most a tenth of a simulated second per step.
func MakeBuilder() Builder {
	return Builder{
		maxStep:  0.1,
		interval: 50 * time.Millisecond,
	}
}

// WithEngine sets the engine to pace.
func (b Builder) WithEngine(e *shop.Engine) Builder {
	b.engine = e
	return b
}

// WithMaxStep caps the simulated time fed to the engine in one Advance.
func (b Builder) WithMaxStep(step shop.VTimeInSec) Builder {
	b.maxStep = step
	return b
}

// WithInterval sets the wall-clock tick of the pacing loop.
func (b Builder) WithInterval(interval time.Duration) Builder {
	b.interval = interval
	return b
}

// Build creates the driver. The driver does not run until Start is called.
func (b Builder) Build() *Driver {
	b.parametersMustBeValid()

	return &Driver{
		engine:   b.engine,
		maxStep:  b.maxStep,
		interval: b.interval,
	}
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		log.Panic("driver requires an engine")
	}

	if b.maxStep <= 0 {
		log.Panicf("max step %f must be positive", b.maxStep)
	}

	if b.interval <= 0 {
		log.Panic("tick interval must be positive")
	}
}
