// Package simulation wires an engine, a driver, statistics trackers, run
// recording, and the monitoring server into one runnable barbershop.
package simulation

import (
	"github.com/sarchlab/barbersim/datarecording"
	"github.com/sarchlab/barbersim/driver"
	"github.com/sarchlab/barbersim/monitoring"
	"github.com/sarchlab/barbersim/shop"
	"github.com/sarchlab/barbersim/tracking"
)

// A Simulation provides the services required to run a barbershop.
type Simulation struct {
	id string

	engine *shop.Engine
	driver *driver.Driver

	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder
	monitor      *monitoring.Monitor

	counts    *tracking.CountTracker
	waitTimes *tracking.WaitTimeTracker
	busyTimes *tracking.BusyTimeTracker
	visits    *tracking.DBTracker
	csv       *tracking.CSVTracker
}

// ID returns the unique id of this run.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine that runs the shop.
func (s *Simulation) GetEngine() *shop.Engine {
	return s.engine
}

// GetDriver returns the driver that paces the engine.
func (s *Simulation) GetDriver() *driver.Driver {
	return s.driver
}

// GetDataRecorder returns the data recorder used in the simulation. It is
// nil when recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetRunRecorder returns the recorder for run-level metadata. It is nil
// when recording is disabled.
func (s *Simulation) GetRunRecorder() *datarecording.RunRecorder {
	return s.runRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetCountTracker returns the lifecycle-event counters.
func (s *Simulation) GetCountTracker() *tracking.CountTracker {
	return s.counts
}

// GetWaitTimeTracker returns the waiting-time aggregator.
func (s *Simulation) GetWaitTimeTracker() *tracking.WaitTimeTracker {
	return s.waitTimes
}

// GetBusyTimeTracker returns the per-barber busy-time aggregator.
func (s *Simulation) GetBusyTimeTracker() *tracking.BusyTimeTracker {
	return s.busyTimes
}

// Terminate stops the driver and flushes and closes everything that holds
// buffered run data.
func (s *Simulation) Terminate() {
	s.driver.Stop()

	if s.csv != nil {
		s.csv.Flush()
	}

	if s.visits != nil {
		s.visits.Terminate()
	}

	if s.runRecorder != nil {
		s.runRecorder.End()
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
