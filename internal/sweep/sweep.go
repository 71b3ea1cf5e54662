// Package sweep runs the bisection/Newton comparison over many times or
// coefficients, either from a YAML scenario file or a linear time range.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/rootlab/internal/experiment"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description"`
	FrequencyHz   float64   `yaml:"frequency_hz"`
	Tolerance     float64   `yaml:"tolerance"`
	MaxIterations int       `yaml:"max_iterations"`
	Times         []float64 `yaml:"times"`
	Coefficients  []float64 `yaml:"coefficients"`
}

// Entry is one finished run of a batch.
type Entry struct {
	Label  string
	Report *experiment.Report
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Times) == 0 && len(scenario.Coefficients) == 0 {
		return nil, fmt.Errorf("scenario %q has no times or coefficients", scenario.Name)
	}

	return &scenario, nil
}

// Apply overlays the scenario's non-zero settings on base.
func (s *Scenario) Apply(base experiment.Config) experiment.Config {
	cfg := base
	if s.FrequencyHz != 0 {
		cfg.FrequencyHz = s.FrequencyHz
	}
	if s.Tolerance != 0 {
		cfg.Solver.Tolerance = s.Tolerance
	}
	if s.MaxIterations != 0 {
		cfg.Solver.MaxIterations = s.MaxIterations
	}
	return cfg
}

// RunScenario executes every time, then every coefficient, in file order,
// with cfg exactly as given. Callers overlay the scenario's own settings
// with Apply before any flags of their own. Cancellation is checked between
// runs only.
func RunScenario(ctx context.Context, scenario *Scenario, cfg experiment.Config, logger *slog.Logger, opts ...experiment.Option) ([]Entry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	exp := experiment.New(cfg, append(opts, experiment.WithLogger(logger))...)
	total := len(scenario.Times) + len(scenario.Coefficients)
	entries := make([]Entry, 0, total)

	for i, t := range scenario.Times {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		rep, err := exp.RunTime(t)
		if err != nil {
			return entries, fmt.Errorf("step %d (t=%g): %w", i+1, t, err)
		}
		entries = append(entries, Entry{Label: fmt.Sprintf("t=%g", t), Report: rep})
		logger.Info("scenario step", "scenario", scenario.Name, "step", len(entries), "total", total, "t", t)
	}

	for i, c := range scenario.Coefficients {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		rep, err := exp.Run(c)
		if err != nil {
			return entries, fmt.Errorf("step %d (C=%g): %w", len(scenario.Times)+i+1, c, err)
		}
		entries = append(entries, Entry{Label: fmt.Sprintf("C=%g", c), Report: rep})
		logger.Info("scenario step", "scenario", scenario.Name, "step", len(entries), "total", total, "c", c)
	}

	return entries, nil
}

// Range returns n evenly spaced values from `from` to `to` inclusive.
func Range(from, to float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("steps must be positive, got %d", n)
	}
	if n == 1 {
		return []float64{from}, nil
	}
	step := (to - from) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[n-1] = to
	return out, nil
}

// RunTimes is a parameter sweep over t.
func RunTimes(ctx context.Context, times []float64, cfg experiment.Config, logger *slog.Logger, opts ...experiment.Option) ([]Entry, error) {
	return RunScenario(ctx, &Scenario{Name: "sweep", Times: times}, cfg, logger, opts...)
}

// MaxDifference returns the largest bisection/Newton discrepancy in entries.
func MaxDifference(entries []Entry) float64 {
	worst := 0.0
	for _, e := range entries {
		if e.Report.Difference > worst {
			worst = e.Report.Difference
		}
	}
	return worst
}
