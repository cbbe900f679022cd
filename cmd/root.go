package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/cache-sim/cache-sim/sim"
	"github.com/cache-sim/cache-sim/sim/plot"
	"github.com/cache-sim/cache-sim/sim/recording"
	"github.com/cache-sim/cache-sim/sim/trace"
	"github.com/cache-sim/cache-sim/sim/workload"
)

var (
	// CLI flags for cache geometry
	cacheSize     int    // Total cache capacity in bytes
	blockSize     int    // Cache line size in bytes
	associativity int    // Number of ways per set
	policyName    string // Replacement policy name (FIFO or LRU)
	configFile    string // Path to a YAML cache geometry file

	// CLI flags for input selection
	traceFile    string // Path to a hex address trace file
	workloadFile string // Path to a synthetic workload spec (YAML)

	// CLI flags for outputs
	logLevel string // Log verbosity level
	plotFile string // Hit-rate chart output path ("" = disabled)
	recordDB string // Access recording database path ("" = disabled, "auto" = generated name)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "Set-associative cache simulator",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cache simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		config := resolveConfig(cmd)
		addrs := resolveAddresses()

		cache, err := sim.NewCache(config)
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}
		logrus.Infof("Cache initialized with %d sets, %d-way associativity, using %s replacement policy.",
			config.NumSets(), config.Associativity, config.Policy)

		var recorder recording.DataRecorder
		if recordDB != "" {
			path := recordDB
			if path == "auto" {
				path = ""
			}
			recorder, err = recording.New(path)
			if err != nil {
				logrus.Fatalf("Could not open recording database: %v", err)
			}
		}

		logrus.Infof("Processing %d memory addresses.", len(addrs))
		startTime := time.Now()

		// Initialize and run the simulator
		s := sim.NewSimulator(cache, recorder)
		s.Run(addrs)
		s.RecordRun()
		s.Stats.Summary().Print()

		if recorder != nil {
			if err := recorder.Flush(); err != nil {
				logrus.Errorf("Failed to flush recording database: %v", err)
			}
		}

		if plotFile != "" {
			if err := plot.SaveHitRate(s.Stats.HitRateSamples(), plotFile); err != nil {
				logrus.Fatalf("Could not save hit-rate plot: %v", err)
			}
			logrus.Infof("Hit rate plot saved as %s", plotFile)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// resolveConfig merges the geometry file (when given) with CLI flags.
// Explicitly set flags win over file values.
func resolveConfig(cmd *cobra.Command) sim.Config {
	policy, err := sim.ParsePolicy(policyName)
	if err != nil {
		logrus.Fatalf("Configuration error: %v", err)
	}
	config := sim.Config{
		CacheSize:     cacheSize,
		BlockSize:     blockSize,
		Associativity: associativity,
		Policy:        policy,
	}

	if configFile == "" {
		return config
	}
	file, err := sim.LoadConfigFile(configFile)
	if err != nil {
		logrus.Fatalf("Could not load cache config: %v", err)
	}
	if file.CacheSize != 0 && !cmd.Flags().Changed("cache-size") {
		config.CacheSize = file.CacheSize
	}
	if file.BlockSize != 0 && !cmd.Flags().Changed("block-size") {
		config.BlockSize = file.BlockSize
	}
	if file.Associativity != 0 && !cmd.Flags().Changed("associativity") {
		config.Associativity = file.Associativity
	}
	if file.Policy != "" && !cmd.Flags().Changed("policy") {
		p, err := sim.ParsePolicy(file.Policy)
		if err != nil {
			logrus.Fatalf("Configuration error in %s: %v", configFile, err)
		}
		config.Policy = p
	}
	return config
}

// resolveAddresses picks the input trace: an explicit trace file first,
// then a synthetic workload spec, then the built-in demo trace.
func resolveAddresses() []uint64 {
	if traceFile != "" {
		addrs, err := trace.ReadFile(traceFile)
		if err != nil {
			logrus.Fatalf("Could not read trace file: %v", err)
		}
		return addrs
	}
	if workloadFile != "" {
		spec, err := workload.Load(workloadFile)
		if err != nil {
			logrus.Fatalf("Could not load workload spec: %v", err)
		}
		addrs, err := spec.Generate()
		if err != nil {
			logrus.Fatalf("Could not generate workload: %v", err)
		}
		return addrs
	}
	logrus.Info("No trace file or workload given; using the built-in demo trace.")
	return demoTrace()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	// Cache geometry
	runCmd.Flags().IntVar(&cacheSize, "cache-size", defaultCacheSize, "Total cache size in bytes")
	runCmd.Flags().IntVar(&blockSize, "block-size", defaultBlockSize, "Block (line) size in bytes")
	runCmd.Flags().IntVar(&associativity, "associativity", defaultAssociativity, "Number of ways per set")
	runCmd.Flags().StringVar(&policyName, "policy", defaultPolicy, "Replacement policy (FIFO or LRU)")
	runCmd.Flags().StringVar(&configFile, "config", "", "YAML cache geometry file (explicit flags override it)")

	// Input selection
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Trace file with one hex address per line")
	runCmd.Flags().StringVar(&workloadFile, "workload", "", "Synthetic workload spec (YAML)")

	// Outputs
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&plotFile, "plot-file", "", "Write a hit-rate chart to this path (.png, .svg, .pdf)")
	runCmd.Flags().StringVar(&recordDB, "record-db", "", "Record per-access rows to this SQLite database (\"auto\" picks a name)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
