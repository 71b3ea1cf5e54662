package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/physics"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/storage"
	"github.com/san-kum/rootlab/internal/sweep"
	"github.com/san-kum/rootlab/internal/trace"
	"github.com/san-kum/rootlab/internal/viz"
	"github.com/spf13/cobra"
)

const plotRuleWidth = 72

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	flags := cmd.Flags()

	if flags.Lookup("preset") != nil && preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if flags.Lookup("config") != nil && configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	return applyFlags(cmd, cfg)
}

// resolveScenarioConfig layers defaults, the scenario's settings and
// explicit flags, in that order.
func resolveScenarioConfig(cmd *cobra.Command, sc *sweep.Scenario) (*config.Config, error) {
	cfg := config.DefaultConfig()
	ec := sc.Apply(cfg.ExperimentConfig())
	cfg.FrequencyHz = ec.FrequencyHz
	cfg.Tolerance = ec.Solver.Tolerance
	cfg.MaxIterations = ec.Solver.MaxIterations
	return applyFlags(cmd, cfg)
}

// applyFlags overrides cfg with every flag set on the command line, then
// validates the result.
func applyFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("freq") {
		cfg.FrequencyHz = freqHz
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Time = tFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !physics.TypicalFrequency(cfg.FrequencyHz) {
		logger.Warn("trap frequency outside the usual range",
			"hz", cfg.FrequencyHz, "min", physics.MinFrequencyHz, "max", physics.MaxFrequencyHz)
	}
	return cfg, nil
}

// promptTime asks for t the way the interactive lab always has.
func promptTime(in io.Reader, out io.Writer) (float64, error) {
	fmt.Fprint(out, "enter time t for the calculation (float): ")
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("no time given: %w", roots.ErrInvalidInput)
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("time %q is not a number: %w", sc.Text(), roots.ErrInvalidInput)
	}
	if t <= 0 {
		return 0, fmt.Errorf("t must be a positive number: %w", roots.ErrInvalidInput)
	}
	return t, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	t := cfg.Time
	if !cmd.Flags().Changed("time") && preset == "" && configFile == "" {
		t, err = promptTime(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	return solveAndReport(cmd.OutOrStdout(), cfg, func(e *experiment.Experiment) (*experiment.Report, error) {
		return e.RunTime(t)
	})
}

func runSolveC(cmd *cobra.Command, args []string) error {
	c, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("coefficient %q is not a number: %w", args[0], roots.ErrInvalidInput)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return solveAndReport(cmd.OutOrStdout(), cfg, func(e *experiment.Experiment) (*experiment.Report, error) {
		return e.Run(c)
	})
}

func solveAndReport(out io.Writer, cfg *config.Config, run func(*experiment.Experiment) (*experiment.Report, error)) error {
	rec := trace.NewRecorder()
	opts := []experiment.Option{
		experiment.WithLogger(logger),
		experiment.WithObserver(rec),
	}
	if !quiet {
		opts = append(opts, experiment.WithObserver(trace.NewPrinter(out)))
	}

	start := time.Now()
	rep, err := run(experiment.New(cfg.ExperimentConfig(), opts...))
	if err != nil {
		return err
	}
	logger.Debug("experiment finished", "elapsed", time.Since(start))

	fmt.Fprintln(out)
	if plain {
		fmt.Fprintln(out, "comparison of results:")
		fmt.Fprintln(out, viz.PlainSummary(rep))
	} else {
		fmt.Fprintln(out, viz.RenderSummary(rep))
	}

	if plots {
		for _, method := range rec.Methods() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, viz.ConvergencePlot(rec.Iterations(method), method+": log10|f(λ)| per iteration"))
		}
	} else if !quiet {
		fmt.Fprintln(out)
		for _, method := range rec.Methods() {
			fmt.Fprintf(out, "%-10s %s\n", method, viz.Sparkline(rec.Residuals(method), 40))
		}
	}

	if save {
		st := storage.New(dataDir)
		runID, err := st.Save(rep, cfg.SolverConfig(), rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nrun id: %s\n", runID)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	times, err := sweep.Range(fromT, toT, steps)
	if err != nil {
		return err
	}

	entries, err := sweep.RunTimes(cmd.Context(), times, cfg.ExperimentConfig(), logger)
	if err != nil {
		return err
	}
	return printEntries(cmd.OutOrStdout(), entries, "λ vs t")
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := sweep.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveScenarioConfig(cmd, sc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Description != "" {
		fmt.Fprintf(out, "%s: %s\n\n", sc.Name, sc.Description)
	}
	entries, err := sweep.RunScenario(cmd.Context(), sc, cfg.ExperimentConfig(), logger)
	if err != nil {
		return err
	}
	return printEntries(out, entries, sc.Name+": λ per run")
}

func printEntries(out io.Writer, entries []sweep.Entry, caption string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tC\tλ BISECTION\tITER\tλ NEWTON\tITER\tDIFF")
	for _, e := range entries {
		r := e.Report
		fmt.Fprintf(w, "%s\t%.6g\t%.12f\t%d\t%.12f\t%d\t%.3e\n",
			e.Label, r.C,
			r.Bisection.Root, r.Bisection.Iterations,
			r.Newton.Root, r.Newton.Iterations,
			r.Difference,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nmax difference: %.3e\n\n", sweep.MaxDifference(entries))
	if len(entries) > 1 {
		fmt.Fprintln(out, viz.SweepPlot(entries, caption))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rec := trace.NewRecorder()
	e := experiment.New(cfg.ExperimentConfig(), experiment.WithObserver(rec), experiment.WithLogger(logger))
	rep, err := e.RunTime(cfg.Time)
	if err != nil {
		return err
	}

	fps := frameRate
	if fps <= 0 {
		fps = 8
	}
	m := viz.NewReplay(
		fmt.Sprintf("t = %g s, C = %.6g", rep.Time, rep.C),
		rec.Iterations(roots.MethodBisection),
		rec.Iterations(roots.MethodNewton),
		time.Second/time.Duration(fps),
	)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSummary(rep))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tC\tλ NEWTON\tDIFF\tTOL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.6g\t%.12f\t%.3e\t%g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Report.C,
			run.Report.Newton.Root,
			run.Report.Difference,
			run.Tolerance,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	its, err := st.LoadIterations(runID)
	if err != nil {
		return err
	}
	if len(its) == 0 {
		return errors.New("no iterations to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "C: %g\n\n", meta.Report.C)

	for _, method := range []string{roots.MethodBisection, roots.MethodNewton} {
		if len(its[method]) == 0 {
			continue
		}
		fmt.Fprintln(out, viz.Separator(plotRuleWidth))
		fmt.Fprintln(out, viz.EstimatePlot(its[method], method+": λ per iteration"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.ConvergencePlot(its[method], method+": log10|f(λ)| per iteration"))
		fmt.Fprintln(out)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTIME\tFREQ\tTOL\tMAX ITER")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%gs\t%g Hz\t%g\t%d\n", name, p.Time, p.FrequencyHz, p.Tolerance, p.MaxIterations)
	}
	return w.Flush()
}

func listMethods(cmd *cobra.Command, args []string) error {
	for _, name := range experiment.NewRegistry().ListMethods() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
