// Package driver paces a shop engine against the wall clock so that the
// simulation can be watched, paused, and resumed interactively.
package driver

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sarchlab/barbersim/shop"
)

// A Driver owns the wall-clock loop of one simulation. On every tick it
// measures the real time elapsed, scales it by the engine's playback speed,
// and feeds it to the engine in steps no larger than the configured maximum
// step. Capping the step keeps completions and arrivals from drifting when
// the playback speed is cranked up.
//
// Pausing freezes simulated time only; a paused driver keeps ticking so
// that, on continue, no wall-clock backlog is replayed.
type Driver struct {
	engine   *shop.Engine
	maxStep  shop.VTimeInSec
	interval time.Duration

	mu      sync.Mutex
	running bool
	paused  bool
	stop    chan struct{}
	done    chan struct{}
}

// Start launches the pacing loop. Starting a running driver is a
// programming error.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		log.Panic("driver is already running")
	}

	d.running = true
	d.paused = false
	d.stop = make(chan struct{})
	d.done = make(chan struct{})

	go d.loop(d.stop, d.done)
}

// Stop terminates the pacing loop and waits for it to wind down. Stopping
// a stopped driver is a no-op.
func (d *Driver) Stop() {
	d.mu.Lock()

	if !d.running {
		d.mu.Unlock()
		return
	}

	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()

	close(stop)
	<-done
}

// Pause freezes simulated time until Continue is called.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.paused = true
}

// Continue resumes a paused driver. Wall time spent paused is discarded,
// not replayed.
func (d *Driver) Continue() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.paused = false
}

// IsPaused tells whether the driver is holding simulated time still.
func (d *Driver) IsPaused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.paused
}

// IsRunning tells whether the pacing loop is alive.
func (d *Driver) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.running
}

// RunFor advances the engine by the given simulated duration as fast as
// possible, without wall-clock pacing. It ignores the pause state and the
// playback speed; the duration is simulated time, applied in maxStep
// chunks.
func (d *Driver) RunFor(duration shop.VTimeInSec) error {
	if duration < 0 {
		return fmt.Errorf("%w: negative duration %f",
			shop.ErrInvalidArgument, duration)
	}

	remaining := duration
	for remaining > 0 {
		step := remaining
		if step > d.maxStep {
			step = d.maxStep
		}

		err := d.engine.Advance(step)
		if err != nil {
			return err
		}

		remaining -= step
	}

	return nil
}

func (d *Driver) loop(stop <-chan struct{}, done chan<- struct{}) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	defer close(done)

	last := time.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			d.mu.Lock()
			paused := d.paused
			d.mu.Unlock()

			if paused {
				last = now
				continue
			}

			elapsed := now.Sub(last)
			last = now

			d.advanceScaled(elapsed)
		}
	}
}

// advanceScaled converts a wall-clock interval into simulated time using
// the engine's current playback speed and applies it in maxStep chunks.
func (d *Driver) advanceScaled(wall time.Duration) {
	dt := shop.VTimeInSec(wall.Seconds() * d.engine.SimulationSpeed())

	for dt > 0 {
		step := dt
		if step > d.maxStep {
			step = d.maxStep
		}

		err := d.engine.Advance(step)
		if err != nil {
			log.Panic(err)
		}

		dt -= step
	}
}
