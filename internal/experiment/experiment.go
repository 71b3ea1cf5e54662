// Package experiment runs bisection and Newton's method side by side on the
// expansion equation and reports how closely they agree.
package experiment

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/rootlab/internal/physics"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/trace"
)

type Config struct {
	FrequencyHz float64
	Solver      roots.Config
}

func DefaultConfig() Config {
	return Config{
		FrequencyHz: physics.DefaultFrequencyHz,
		Solver:      roots.DefaultConfig(),
	}
}

// Announcer is implemented by observers that frame each solver run, such as
// the console trace.
type Announcer interface {
	Begin(method, detail string)
	End(res roots.Result)
}

type Report struct {
	Time        float64       `json:"time,omitempty"`
	FrequencyHz float64       `json:"frequency_hz,omitempty"`
	C           float64       `json:"c"`
	Bracket     roots.Bracket `json:"bracket"`
	Bisection   roots.Result  `json:"bisection"`
	Newton      roots.Result  `json:"newton"`
	Difference  float64       `json:"difference"`
}

// Agree reports whether both roots lie within tol of each other.
func (r *Report) Agree(tol float64) bool {
	return r.Difference <= tol
}

type Option func(*Experiment)

func WithObserver(obs roots.Observer) Option {
	return func(e *Experiment) {
		if obs != nil {
			e.observers = append(e.observers, obs)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Experiment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) {
		if r != nil {
			e.registry = r
		}
	}
}

type Experiment struct {
	cfg       Config
	registry  *Registry
	observers []roots.Observer
	logger    *slog.Logger
}

func New(cfg Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunTime computes C from the configured trap frequency and t, then runs.
func (e *Experiment) RunTime(t float64) (*Report, error) {
	c, err := physics.Coefficient(physics.Omega0(e.cfg.FrequencyHz), t)
	if err != nil {
		return nil, err
	}
	rep, err := e.Run(c)
	if err != nil {
		return nil, err
	}
	rep.Time = t
	rep.FrequencyHz = e.cfg.FrequencyHz
	return rep, nil
}

// Run solves f(λ) = 0 for coefficient c with both methods.
func (e *Experiment) Run(c float64) (*Report, error) {
	if err := e.cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	br, err := roots.SelectBracket(c)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("bracket selected", "c", c, "a", br.A, "b", br.B, "x0", br.X0)

	bis, err := e.solve(roots.MethodBisection, c, br)
	if err != nil {
		return nil, err
	}
	nwt, err := e.solve(roots.MethodNewton, c, br)
	if err != nil {
		return nil, err
	}

	return &Report{
		C:          c,
		Bracket:    br,
		Bisection:  bis,
		Newton:     nwt,
		Difference: math.Abs(bis.Root - nwt.Root),
	}, nil
}

func (e *Experiment) solve(method string, c float64, br roots.Bracket) (roots.Result, error) {
	fn, err := e.registry.GetMethod(method)
	if err != nil {
		return roots.Result{}, err
	}

	detail := e.registry.Describe(method, br)
	for _, o := range e.observers {
		if a, ok := o.(Announcer); ok {
			a.Begin(method, detail)
		}
	}

	var obs roots.Observer
	if len(e.observers) > 0 {
		obs = trace.Multi(e.observers...)
	}

	res, err := fn(c, br, e.cfg.Solver, obs)
	if err != nil {
		return res, fmt.Errorf("%s: %w", method, err)
	}

	for _, o := range e.observers {
		if a, ok := o.(Announcer); ok {
			a.End(res)
		}
	}

	if res.Clamps > 0 {
		e.logger.Debug("domain guard engaged", "method", method, "clamps", res.Clamps)
	}
	if res.Stalled {
		e.logger.Warn("solver stalled on its derivative", "method", method, "iterations", res.Iterations, "root", res.Root)
	} else if !res.Converged {
		e.logger.Warn("solver did not reach tolerance", "method", method, "iterations", res.Iterations, "root", res.Root)
	} else {
		e.logger.Debug("solver finished", "method", method, "iterations", res.Iterations, "root", res.Root)
	}
	return res, nil
}
