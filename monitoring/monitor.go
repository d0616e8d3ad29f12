// Package monitoring turns a running barbershop simulation into a web
// server, allowing external tools to observe and control it.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/sarchlab/barbersim/driver"
	"github.com/sarchlab/barbersim/monitoring/web"
	"github.com/sarchlab/barbersim/shop"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor can turn a simulation into a server and allows external monitoring
// and controlling of the simulation.
type Monitor struct {
	engine     *shop.Engine
	driver     *driver.Driver
	portNumber int
	url        string

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that runs the shop.
func (m *Monitor) RegisterEngine(e *shop.Engine) {
	m.engine = e
}

// RegisterDriver registers the driver that paces the engine. Pause and
// continue requests are forwarded to it.
func (m *Monitor) RegisterDriver(d *driver.Driver) {
	m.driver = d
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	r := m.router()
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// URL returns the address of the started server. It is empty before
// StartServer is called.
func (m *Monitor) URL() string {
	return m.url
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/stats", m.stats)
	r.HandleFunc("/api/pause", m.pauseDriver)
	r.HandleFunc("/api/continue", m.continueDriver)
	r.HandleFunc("/api/customer", m.addCustomer)
	r.HandleFunc("/api/barbers/{count}", m.setBarberCount)
	r.HandleFunc("/api/chairs/{count}", m.setChairCount)
	r.HandleFunc("/api/duration/{seconds}", m.setServiceDuration)
	r.HandleFunc("/api/rate/{perMinute}", m.setArrivalRate)
	r.HandleFunc("/api/speed/{multiplier}", m.setSimulationSpeed)
	r.HandleFunc("/api/engine", m.engineInternals)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	snapshot := m.engine.Snapshot()

	bytes, err := json.Marshal(snapshot)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	stats := m.engine.Snapshot().Stats()

	bytes, err := json.Marshal(stats)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) pauseDriver(w http.ResponseWriter, _ *http.Request) {
	m.driver.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueDriver(w http.ResponseWriter, _ *http.Request) {
	m.driver.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) addCustomer(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	customer := m.engine.AddCustomer(name)

	bytes, err := json.Marshal(customer)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) setBarberCount(w http.ResponseWriter, r *http.Request) {
	count, ok := m.intPathVar(w, r, "count")
	if !ok {
		return
	}

	applied, err := m.engine.SetBarberCount(count)
	if err != nil {
		badRequest(w, err)
		return
	}

	fmt.Fprintf(w, "{\"barbers\":%d}", applied)
}

func (m *Monitor) setChairCount(w http.ResponseWriter, r *http.Request) {
	count, ok := m.intPathVar(w, r, "count")
	if !ok {
		return
	}

	applied, err := m.engine.SetChairCount(count)
	if err != nil {
		badRequest(w, err)
		return
	}

	fmt.Fprintf(w, "{\"chairs\":%d}", applied)
}

func (m *Monitor) setServiceDuration(w http.ResponseWriter, r *http.Request) {
	seconds, ok := m.floatPathVar(w, r, "seconds")
	if !ok {
		return
	}

	err := m.engine.SetServiceDuration(shop.VTimeInSec(seconds))
	if err != nil {
		badRequest(w, err)
		return
	}

	fmt.Fprintf(w, "{\"service_duration\":%.10f}", seconds)
}

func (m *Monitor) setArrivalRate(w http.ResponseWriter, r *http.Request) {
	perMinute, ok := m.floatPathVar(w, r, "perMinute")
	if !ok {
		return
	}

	err := m.engine.SetArrivalRate(perMinute)
	if err != nil {
		badRequest(w, err)
		return
	}

	fmt.Fprintf(w, "{\"arrival_rate\":%.10f}", perMinute)
}

func (m *Monitor) setSimulationSpeed(w http.ResponseWriter, r *http.Request) {
	multiplier, ok := m.floatPathVar(w, r, "multiplier")
	if !ok {
		return
	}

	err := m.engine.SetSimulationSpeed(multiplier)
	if err != nil {
		badRequest(w, err)
		return
	}

	fmt.Fprintf(w, "{\"speed\":%.10f}", multiplier)
}

func (m *Monitor) engineInternals(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.engine)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(m.progressBars)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) intPathVar(
	w http.ResponseWriter,
	r *http.Request,
	name string,
) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		badRequest(w, err)
		return 0, false
	}

	return value, true
}

func (m *Monitor) floatPathVar(
	w http.ResponseWriter,
	r *http.Request,
	name string,
) (float64, bool) {
	value, err := strconv.ParseFloat(mux.Vars(r)[name], 64)
	if err != nil {
		badRequest(w, err)
		return 0, false
	}

	return value, true
}

func badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Error: %s", err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
