package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/c2h5oh/datasize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blocksim/blocksim/sim"
	"github.com/blocksim/blocksim/sim/catalog"
	"github.com/blocksim/blocksim/sim/trace"
	"github.com/blocksim/blocksim/sim/workload"
)

var (
	// Simulator flags, shared by run and shell
	configPath string // YAML simulator config (optional)
	logLevel   string // Log verbosity level
	capacity   int    // Number of blocks on the disk
	strategy   string // Allocation strategy
	blockSize  string // Bytes per block, e.g. "4KB" (reporting only)
	traceLevel string // Operation trace level
	mapWidth   int    // Blocks per row in the disk map

	// run flags
	scriptPath     string  // YAML operation script (optional)
	seed           int64   // Seed for the synthetic workload
	numOps         int     // Number of synthetic operations
	minSize        int     // Smallest synthetic file size
	maxSize        int     // Largest synthetic file size
	deleteFraction float64 // Probability of a synthetic delete
	catalogIn      string  // Catalog to restore before running
	catalogOut     string  // Catalog to save after running
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "blocksim",
	Short: "Block-level file allocation simulator (contiguous, linked, indexed)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd replays a script or a synthetic workload and reports the final disk state
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an operation script or a generated workload against a fresh disk",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid simulator configuration: %v", err)
		}

		var ops []workload.Operation
		if scriptPath != "" {
			script, err := workload.LoadScript(scriptPath)
			if err != nil {
				logrus.Fatalf("Failed to load script %s: %v", scriptPath, err)
			}
			ops = script.Operations
		} else {
			ops, err = workload.Generate(workload.GenSpec{
				Seed:           seed,
				Operations:     numOps,
				MinSize:        minSize,
				MaxSize:        maxSize,
				DeleteFraction: deleteFraction,
			})
			if err != nil {
				logrus.Fatalf("Failed to generate workload: %v", err)
			}
		}

		logrus.Infof("Starting simulation: %d blocks, strategy=%s, %d operations",
			cfg.Capacity, cfg.Strategy, len(ops))
		if err := runSimulation(cmd.OutOrStdout(), cfg, ops, catalogIn, catalogOut); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveConfig starts from the config file (or defaults) and applies only the
// flags the user actually set, so flag defaults never clobber file values.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if flags.Changed("strategy") {
		cfg.Strategy = sim.StrategyKind(strategy)
	}
	if flags.Changed("block-size") {
		size, err := datasize.ParseString(blockSize)
		if err != nil {
			return cfg, fmt.Errorf("invalid --block-size %q: %w", blockSize, err)
		}
		cfg.BlockSize = size
	}
	if flags.Changed("trace") {
		cfg.TraceLevel = trace.TraceLevel(traceLevel)
	}
	return cfg, cfg.Validate()
}

// runSimulation builds a simulator, optionally restores a catalog, replays ops and
// writes the per-operation outcomes, the disk map and the metrics to w.
func runSimulation(w io.Writer, cfg sim.Config, ops []workload.Operation, restoreFrom, saveTo string) error {
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return err
	}
	if restoreFrom != "" {
		cat, err := catalog.LoadFile(restoreFrom)
		if err != nil {
			return err
		}
		restored, failures := cat.Restore(s)
		for _, f := range failures {
			fmt.Fprintf(w, "restore %s: %v\n", f.Record.Name, f.Err)
		}
		fmt.Fprintf(w, "restored %d of %d cataloged files\n", restored, len(cat.Records))
	}

	for _, r := range workload.Replay(s, ops) {
		fmt.Fprintln(w, formatResult(r))
	}
	fmt.Fprintln(w)
	RenderMap(w, s.Snapshot(), mapWidthOrDefault())
	fmt.Fprintln(w)
	s.Metrics().Print(w, s.Disk(), cfg.BlockSize)
	if cfg.TraceLevel.Enabled() {
		printTraceSummary(w, trace.Summarize(s.Trace()))
	}

	if saveTo != "" {
		if err := catalog.FromSimulator(s).SaveFile(saveTo); err != nil {
			return err
		}
		logrus.Infof("Saved %d files to %s", len(s.Files()), saveTo)
	}
	return nil
}

func formatResult(r workload.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%-28s -> %s: %v", r.Operation, sim.FailureKind(r.Err), r.Err)
	}
	switch r.Operation.Op {
	case workload.OpCreate:
		return fmt.Sprintf("%-28s -> ok %s", r.Operation, r.Layout)
	case workload.OpRead:
		return fmt.Sprintf("%-28s -> ok %v", r.Operation, r.Data)
	default:
		return fmt.Sprintf("%-28s -> ok", r.Operation)
	}
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Operations           : %d (%d ok, %d failed)\n",
		summary.TotalOperations, summary.SucceededCount, summary.FailedCount)
	fmt.Fprintf(w, "Min Free Blocks      : %d\n", summary.MinFreeBlocks)
	reasons := make([]string, 0, len(summary.FailureReasons))
	for reason := range summary.FailureReasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(w, "  %-19s: %d\n", reason, summary.FailureReasons[reason])
	}
}

func mapWidthOrDefault() int {
	if mapWidth <= 0 {
		return 25
	}
	return mapWidth
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSimulatorFlags registers the flags shared by every subcommand that builds a simulator.
func addSimulatorFlags(pf *pflag.FlagSet) {
	pf.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.StringVar(&configPath, "config", "", "YAML simulator configuration file")
	pf.IntVar(&capacity, "capacity", sim.DefaultCapacity, "Number of blocks on the disk")
	pf.StringVar(&strategy, "strategy", string(sim.DefaultStrategy), "Allocation strategy (contiguous, linked, indexed)")
	pf.StringVar(&blockSize, "block-size", sim.DefaultBlockSize.String(), "Bytes per block, for reporting (e.g. 512B, 4KB)")
	pf.StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Operation trace level (none, operations)")
	pf.IntVar(&mapWidth, "map-width", 25, "Blocks per row in the disk map")
}

// init sets up CLI flags and subcommands
func init() {
	addSimulatorFlags(rootCmd.PersistentFlags())

	runCmd.Flags().StringVar(&scriptPath, "script", "", "YAML operation script; a synthetic workload is generated when empty")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the synthetic workload")
	runCmd.Flags().IntVar(&numOps, "ops", 40, "Number of synthetic operations")
	runCmd.Flags().IntVar(&minSize, "min-size", 1, "Smallest synthetic file size in blocks")
	runCmd.Flags().IntVar(&maxSize, "max-size", 10, "Largest synthetic file size in blocks")
	runCmd.Flags().Float64Var(&deleteFraction, "delete-fraction", 0.3, "Probability that a synthetic operation deletes a live file")
	runCmd.Flags().StringVar(&catalogIn, "catalog-in", "", "CSV file catalog (name,size) to restore before running")
	runCmd.Flags().StringVar(&catalogOut, "catalog-out", "", "Write the final file catalog (name,size) to this CSV file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(shellCmd)
}
