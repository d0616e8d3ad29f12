package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfoTableName is the table that stores metadata about one run.
const RunInfoTableName = "run_info"

// A RunInfoEntry is one key/value fact about the run, such as its start
// time or the command line that produced it.
type RunInfoEntry struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// A RunRecorder writes metadata about the running process next to the
// simulation output, so a database file is self-describing.
type RunRecorder struct {
	recorder DataRecorder
	entries  []RunInfoEntry
}

// NewRunRecorder creates a RunRecorder on top of a DataRecorder and
// prepares its table.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	r := &RunRecorder{recorder: recorder}

	recorder.CreateTable(RunInfoTableName, RunInfoEntry{})

	return r
}

// Record adds one custom fact about the run, such as a scenario parameter.
func (r *RunRecorder) Record(property, value string) {
	r.entries = append(r.entries, RunInfoEntry{property, value})
}

// Start captures the start time and the invocation of the process.
func (r *RunRecorder) Start() {
	r.Record("Start Time",
		time.Now().Format("2006-01-02 15:04:05.000000000"))
	r.Record("Command", strings.Join(os.Args, " "))

	wd, err := os.Getwd()
	if err == nil {
		r.Record("Working Directory", wd)
	}
}

// End writes everything recorded so far plus the end time into the
// database.
func (r *RunRecorder) End() {
	r.Record("End Time",
		time.Now().Format("2006-01-02 15:04:05.000000000"))

	for _, entry := range r.entries {
		r.recorder.InsertData(RunInfoTableName, entry)
	}
	r.entries = nil

	r.recorder.Flush()
}
