// cmd/run.go
package cmd

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/railsim/railsim/sim"
)

var (
	scenarioPath   string
	componentsPath string
	routesPath     string
	toursPath      string
	trainsPath     string
	seed           int64
	horizon        int64
	logLevel       string
	outPath        string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a configuration and run the railway simulation",
	Run: func(cmd *cobra.Command, args []string) {
		runScenario()
	},
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario bundle naming the inputs below")
	runCmd.Flags().StringVar(&componentsPath, "components", "", "Path to the components JSON document")
	runCmd.Flags().StringVar(&routesPath, "routes", "", "Path to the routes JSON document")
	runCmd.Flags().StringVar(&toursPath, "tours", "", "Path to the tours JSON document")
	runCmd.Flags().StringVar(&trainsPath, "trains", "", "Path to the trains JSON document")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for the partitioned RNG")
	runCmd.Flags().Int64Var(&horizon, "horizon", 0, "Simulation horizon in ticks (0 = run until the event queue is empty)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&outPath, "out", "", "CSV event log output path (empty = stdout)")
}

func runScenario() {
	if scenarioPath != "" {
		bundle, err := loadScenarioBundle(scenarioPath)
		if err != nil {
			logrus.Fatalf("failed to load scenario bundle: %v", err)
		}
		if componentsPath == "" {
			componentsPath = bundle.Components
		}
		if routesPath == "" {
			routesPath = bundle.Routes
		}
		if toursPath == "" {
			toursPath = bundle.Tours
		}
		if trainsPath == "" {
			trainsPath = bundle.Trains
		}
		if seed == 0 {
			seed = bundle.Seed
		}
		if horizon == 0 && bundle.Horizon != nil {
			horizon = *bundle.Horizon
		}
		if bundle.LogLevel != "" {
			logLevel = bundle.LogLevel
		}
		if outPath == "" {
			outPath = bundle.Out
		}
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %q: %v", logLevel, err)
	}
	logrus.SetLevel(level)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logrus.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	model := sim.NewModel(seed, sim.NewEventLog(out))

	if err := model.LoadComponents(readComponents(componentsPath)); err != nil {
		logrus.Fatalf("failed to load components: %v", err)
	}
	if err := model.LoadRoutes(readRoutes(routesPath)); err != nil {
		logrus.Fatalf("failed to load routes: %v", err)
	}
	if err := model.LoadTours(readTours(toursPath)); err != nil {
		logrus.Fatalf("failed to load tours: %v", err)
	}
	if err := model.LoadTrains(readTrains(trainsPath)); err != nil {
		logrus.Fatalf("failed to load trains: %v", err)
	}

	logrus.Infof("starting simulation: %s", model)
	model.Start()

	var until *int64
	if horizon > 0 {
		until = &horizon
	}
	model.Run(until)
	logrus.Info("simulation complete")
}

func readComponents(path string) []sim.ComponentRecord {
	var recs []sim.ComponentRecord
	decodeFile(path, &recs)
	return recs
}

func readRoutes(path string) []sim.RouteRecord {
	var recs []sim.RouteRecord
	decodeFile(path, &recs)
	return recs
}

func readTours(path string) []sim.TourRecord {
	var recs []sim.TourRecord
	decodeFile(path, &recs)
	return recs
}

func readTrains(path string) []sim.TrainRecord {
	var recs []sim.TrainRecord
	decodeFile(path, &recs)
	return recs
}

func decodeFile(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		logrus.Fatalf("failed to parse %s: %v", path, err)
	}
}
