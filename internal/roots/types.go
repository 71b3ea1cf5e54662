package roots

import (
	"fmt"
	"math"
)

const (
	MethodBisection = "bisection"
	MethodNewton    = "newton"
)

const (
	DefaultTolerance     = 1e-15
	DefaultMaxIterations = 5000
)

// Func evaluates the equation at lambda for coefficient c.
type Func func(lambda, c float64) float64

// Deriv evaluates the derivative of a Func with respect to lambda.
type Deriv func(lambda float64) float64

// Bracket is a bisection interval together with the Newton starting point.
type Bracket struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	X0 float64 `json:"x0"`
}

// Iteration is emitted once per solver step.
type Iteration struct {
	Index    int
	Estimate float64
	Value    float64
}

type Result struct {
	Method     string  `json:"method"`
	Root       float64 `json:"root"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	// Width is the final bracket width for bisection and the last step
	// length for Newton.
	Width float64 `json:"width"`
	// Clamps counts Newton steps pulled back inside λ ≥ 1.
	Clamps int `json:"clamps,omitempty"`
	// Stalled is set when Newton stopped early on an unusable derivative.
	Stalled bool `json:"stalled,omitempty"`
}

// Err reports ErrStalled for a Newton run stopped by its derivative and
// ErrNonConvergence for a run that exhausted its iterations.
func (r Result) Err() error {
	if r.Converged {
		return nil
	}
	if r.Stalled {
		return fmt.Errorf("%s at λ = %g after %d iterations: %w", r.Method, r.Root, r.Iterations, ErrStalled)
	}
	return fmt.Errorf("%s after %d iterations: %w", r.Method, r.Iterations, ErrNonConvergence)
}

type Observer interface {
	OnIteration(method string, it Iteration)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(method string, it Iteration)

func (f ObserverFunc) OnIteration(method string, it Iteration) { f(method, it) }

type Config struct {
	Tolerance     float64
	MaxIterations int
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

func (c Config) Validate() error {
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("tolerance must be positive and finite, got %g: %w", c.Tolerance, ErrInvalidInput)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d: %w", c.MaxIterations, ErrInvalidInput)
	}
	return nil
}

func notify(obs Observer, method string, it Iteration) {
	if obs != nil {
		obs.OnIteration(method, it)
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
