package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	verbose   bool
	tFlag     float64
	freqHz    float64
	tolerance float64
	maxIter   int
	// Config file
	configFile string
	// Preset name
	preset string
	quiet  bool
	plain  bool
	save   bool
	plots  bool
	// Sweep range
	fromT float64
	toT   float64
	steps int
	// Replay speed
	frameRate int

	logger = slog.Default()
)

// main is the entry point for the rootlab CLI; it registers commands and
// flags and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rootlab",
		Short:         "bisection vs newton on the trap expansion equation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rootlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve for λ at time t (prompts for t when --time is absent)",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addSolverFlags(solveCmd)
	solveCmd.Flags().Float64Var(&tFlag, "time", 0, "elapsed time t in seconds")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	addOutputFlags(solveCmd)

	solveCCmd := &cobra.Command{
		Use:   "solve-c [C]",
		Short: "solve for λ with an explicit coefficient C",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolveC,
	}
	addSolverFlags(solveCCmd)
	addOutputFlags(solveCCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve over a range of times",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSolverFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&fromT, "from", 0.001, "first time")
	sweepCmd.Flags().Float64Var(&toT, "to", 1.0, "last time")
	sweepCmd.Flags().IntVar(&steps, "steps", 20, "number of times")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addSolverFlags(batchCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay both solvers side by side",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSolverFlags(liveCmd)
	liveCmd.Flags().Float64Var(&tFlag, "time", 1.0, "elapsed time t in seconds")
	liveCmd.Flags().IntVar(&frameRate, "fps", 8, "iterations shown per second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot convergence of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list root-finding methods",
		RunE:  listMethods,
	}

	rootCmd.AddCommand(solveCmd, solveCCmd, sweepCmd, batchCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, methodsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("rootlab failed", "err", err)
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&freqHz, "freq", 100, "trap frequency in Hz")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-15, "solver tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", 5000, "iteration cap per solver")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "omit the per-iteration trace")
	cmd.Flags().BoolVar(&plain, "plain", false, "unstyled summary")
	cmd.Flags().BoolVar(&save, "save", false, "archive the run in the data directory")
	cmd.Flags().BoolVar(&plots, "plot", false, "plot residuals after solving")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
