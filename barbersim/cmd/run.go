package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/barbersim/shop"
	"github.com/sarchlab/barbersim/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a barbershop simulation.",
	Long: "`run` starts a shop and keeps it open until the requested " +
		"duration has been simulated, or until interrupted. While the shop " +
		"is open, the monitoring dashboard can watch and reconfigure it.",
	RunE: runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "",
		"path to a yaml scenario file")
	runCmd.Flags().Float64P("duration", "d", 0,
		"simulated seconds to run; 0 runs until interrupted")
	runCmd.Flags().Bool("fast", false,
		"run without wall-clock pacing; requires --duration")
	runCmd.Flags().Float64("speed", 0,
		"playback speed multiplier, overriding the scenario")
	runCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring server; defaults to $BARBERSIM_MONITOR_PORT")
	runCmd.Flags().Bool("no-monitor", false,
		"disable the monitoring server")
	runCmd.Flags().Bool("no-record", false,
		"disable recording visits to a database")
	runCmd.Flags().StringP("output", "o", "",
		"database file to record into, without extension")
	runCmd.Flags().String("csv", "",
		"also write finished visits to this CSV file")
	runCmd.Flags().Int64("seed", 0,
		"random seed for the arrival stream, overriding the scenario")
	runCmd.Flags().Bool("open", false,
		"open the monitoring dashboard in a browser")
	runCmd.Flags().String("load", "",
		"restore the shop from a state file before running")
	runCmd.Flags().String("save", "",
		"save the shop to a state file after running")
}

type runFlags struct {
	configPath  string
	duration    float64
	fast        bool
	speed       float64
	monitorPort int
	noMonitor   bool
	noRecord    bool
	output      string
	csvPath     string
	seed        int64
	seedSet     bool
	open        bool
	loadPath    string
	savePath    string
}

func parseRunFlags(cmd *cobra.Command) (f runFlags, err error) {
	f.configPath, err = cmd.Flags().GetString("config")
	if err != nil {
		return f, err
	}

	f.duration, err = cmd.Flags().GetFloat64("duration")
	if err != nil {
		return f, err
	}

	f.fast, err = cmd.Flags().GetBool("fast")
	if err != nil {
		return f, err
	}

	f.speed, err = cmd.Flags().GetFloat64("speed")
	if err != nil {
		return f, err
	}

	f.monitorPort, err = intFlagOrEnv(cmd, "monitor-port",
		"BARBERSIM_MONITOR_PORT")
	if err != nil {
		return f, err
	}

	f.noMonitor, err = cmd.Flags().GetBool("no-monitor")
	if err != nil {
		return f, err
	}

	f.noRecord, err = cmd.Flags().GetBool("no-record")
	if err != nil {
		return f, err
	}

	f.output, err = cmd.Flags().GetString("output")
	if err != nil {
		return f, err
	}

	f.csvPath, err = cmd.Flags().GetString("csv")
	if err != nil {
		return f, err
	}

	f.seed, err = cmd.Flags().GetInt64("seed")
	if err != nil {
		return f, err
	}
	f.seedSet = cmd.Flags().Changed("seed")

	f.open, err = cmd.Flags().GetBool("open")
	if err != nil {
		return f, err
	}

	f.loadPath, err = cmd.Flags().GetString("load")
	if err != nil {
		return f, err
	}

	f.savePath, err = cmd.Flags().GetString("save")
	if err != nil {
		return f, err
	}

	return f, nil
}

func (f runFlags) check() error {
	if f.fast && f.duration <= 0 {
		return errors.New("--fast requires a positive --duration")
	}

	if f.noMonitor && f.monitorPort != 0 {
		return errors.New("--monitor-port conflicts with --no-monitor")
	}

	if f.noMonitor && f.open {
		return errors.New("--open conflicts with --no-monitor")
	}

	if f.noRecord && f.output != "" {
		return errors.New("--output conflicts with --no-record")
	}

	return nil
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	f, err := parseRunFlags(cmd)
	if err != nil {
		return err
	}

	if err := f.check(); err != nil {
		return err
	}

	s, err := buildSimulation(f)
	if err != nil {
		return err
	}

	if err := prepareShop(s, f); err != nil {
		return err
	}

	if f.open {
		err := browser.OpenURL(s.GetMonitor().URL())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open the dashboard: %s\n", err)
		}
	}

	if err := runShop(s, f); err != nil {
		return err
	}

	if f.savePath != "" {
		if err := s.SaveState(f.savePath); err != nil {
			return err
		}
	}

	printSummary(s)
	s.Terminate()

	return nil
}

func buildSimulation(f runFlags) (*simulation.Simulation, error) {
	builder := simulation.MakeBuilder()

	var scenarioSeed *int64
	if f.configPath != "" {
		scenario, err := LoadScenario(f.configPath)
		if err != nil {
			return nil, err
		}

		builder = builder.WithConfig(scenario.ShopConfig())
		scenarioSeed = scenario.Seed
	}

	switch {
	case f.seedSet:
		builder = builder.WithSeed(f.seed)
	case scenarioSeed != nil:
		builder = builder.WithSeed(*scenarioSeed)
	}

	if f.noMonitor {
		builder = builder.WithoutMonitoring()
	} else if f.monitorPort > 0 {
		builder = builder.WithMonitorPort(f.monitorPort)
	}

	if f.noRecord {
		builder = builder.WithoutRecording()
	} else if f.output != "" {
		builder = builder.WithOutputFileName(f.output)
	}

	if f.csvPath != "" {
		builder = builder.WithCSVPath(f.csvPath)
	}

	return builder.Build(), nil
}

func prepareShop(s *simulation.Simulation, f runFlags) error {
	if f.loadPath != "" {
		if err := s.LoadState(f.loadPath); err != nil {
			return err
		}
	}

	if f.speed > 0 {
		if err := s.GetEngine().SetSimulationSpeed(f.speed); err != nil {
			return err
		}
	}

	if recorder := s.GetRunRecorder(); recorder != nil {
		if f.configPath != "" {
			recorder.Record("Scenario", f.configPath)
		}
		if f.seedSet {
			recorder.Record("Seed", fmt.Sprintf("%d", f.seed))
		}
	}

	return nil
}

func runShop(s *simulation.Simulation, f runFlags) error {
	if f.fast {
		return fastForward(s, shop.VTimeInSec(f.duration))
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	d := s.GetDriver()
	d.Start()
	defer d.Stop()

	if f.duration <= 0 {
		<-interrupt
		return nil
	}

	target := shop.VTimeInSec(f.duration)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			return nil
		case <-ticker.C:
			if s.GetEngine().CurrentTime() >= target {
				return nil
			}
		}
	}
}

// fastForward simulates the full duration as quickly as possible, in slices
// so that a progress bar can follow along.
func fastForward(s *simulation.Simulation, total shop.VTimeInSec) error {
	const slice = shop.VTimeInSec(60)

	if monitor := s.GetMonitor(); monitor != nil {
		bar := monitor.CreateProgressBar("Fast forward", uint64(total))
		defer monitor.CompleteProgressBar(bar)

		return fastForwardSlices(s, total, slice, bar.IncrementFinished)
	}

	return fastForwardSlices(s, total, slice, func(uint64) {})
}

func fastForwardSlices(
	s *simulation.Simulation,
	total, slice shop.VTimeInSec,
	progress func(uint64),
) error {
	for done := shop.VTimeInSec(0); done < total; {
		step := slice
		if total-done < step {
			step = total - done
		}

		if err := s.GetDriver().RunFor(step); err != nil {
			return err
		}

		done += step
		progress(uint64(step))
	}

	return nil
}

func printSummary(s *simulation.Simulation) {
	snapshot := s.GetEngine().Snapshot()
	stats := snapshot.Stats()

	fmt.Printf("Simulated %.1f s\n", float64(snapshot.Now))
	fmt.Printf("  Arrived:    %d\n", s.GetCountTracker().Arrived())
	fmt.Printf("  Served:     %d\n", stats.Served)
	fmt.Printf("  Rejected:   %d\n", stats.Rejected)
	fmt.Printf("  Waiting:    %d\n", stats.Waiting)
	fmt.Printf("  In chairs:  %d\n", stats.InService)
	fmt.Printf("  Avg wait:   %.2f s\n", float64(stats.AverageWaitTime))
	fmt.Printf("  Max wait:   %.2f s\n",
		float64(s.GetWaitTimeTracker().MaxWait()))

	if snapshot.Now <= 0 {
		return
	}

	for _, b := range snapshot.Barbers {
		utilization := s.GetBusyTimeTracker().Utilization(b.ID)
		fmt.Printf("  Barber %d:   %d haircuts, %.0f%% busy\n",
			b.Label, b.TotalServed, utilization*100)
	}
}
