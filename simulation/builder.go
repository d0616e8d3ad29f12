package simulation

import (
	"github.com/rs/xid"
	"github.com/sarchlab/barbersim/datarecording"
	"github.com/sarchlab/barbersim/driver"
	"github.com/sarchlab/barbersim/monitoring"
	"github.com/sarchlab/barbersim/shop"
	"github.com/sarchlab/barbersim/tracking"
)

// Builder can be used to build a simulation.
type Builder struct {
	config      shop.Config
	seed        int64
	seedSet     bool
	monitorOn   bool
	monitorPort int
	recordingOn bool

	outputFileName string
	csvPath        string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		config:      shop.DefaultConfig(),
		monitorOn:   true,
		recordingOn: true,
	}
}

// WithConfig replaces the shop configuration, including the starting sizes
// and the allowed ranges.
func (b Builder) WithConfig(cfg shop.Config) Builder {
	b.config = cfg
	return b
}

// WithSeed makes the arrival stream reproducible.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	b.seedSet = true
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording sets the simulation to not record visits to a database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithCSVPath additionally mirrors finished visits into a CSV file.
func (b Builder) WithCSVPath(path string) Builder {
	b.csvPath = path
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{}
	s.id = xid.New().String()

	s.engine = b.buildEngine()
	s.driver = driver.MakeBuilder().
		WithEngine(s.engine).
		Build()

	b.attachTrackers(s)

	if b.recordingOn {
		b.buildRecording(s)
	}

	if b.monitorOn {
		b.buildMonitor(s)
	}

	return s
}

func (b Builder) buildEngine() *shop.Engine {
	engineBuilder := shop.MakeBuilder().
		WithConfig(b.config).
		WithBarbers(b.config.DefaultBarbers).
		WithChairs(b.config.DefaultChairs).
		WithServiceDuration(b.config.DefaultServiceDuration).
		WithArrivalRate(b.config.DefaultArrivalRate).
		WithSimulationSpeed(b.config.DefaultSimulationSpeed)

	if b.seedSet {
		engineBuilder = engineBuilder.WithSeed(b.seed)
	}

	return engineBuilder.Build()
}

func (b Builder) attachTrackers(s *Simulation) {
	s.counts = tracking.NewCountTracker()
	tracking.Track(s.engine, s.counts)

	s.waitTimes = tracking.NewWaitTimeTracker()
	tracking.Track(s.engine, s.waitTimes)

	s.busyTimes = tracking.NewBusyTimeTracker(s.engine)
	tracking.Track(s.engine, s.busyTimes)

	if b.csvPath != "" {
		s.csv = tracking.NewCSVTracker(b.csvPath)
		s.csv.Init()
		tracking.Track(s.engine, s.csv)
	}
}

func (b Builder) buildRecording(s *Simulation) {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "barbersim_" + s.id
	}

	s.dataRecorder = datarecording.New(outputPath)

	s.runRecorder = datarecording.NewRunRecorder(s.dataRecorder)
	s.runRecorder.Start()

	s.visits = tracking.NewDBTracker(s.dataRecorder)
	tracking.Track(s.engine, s.visits)
}

func (b Builder) buildMonitor(s *Simulation) {
	s.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		s.monitor = s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterDriver(s.driver)
	s.monitor.StartServer()
}
