package roots

import (
	"fmt"
	"math"
)

// resolution bounds how close two iterates must be, relative to their
// magnitude, before further steps can no longer change the float64 result.
const resolution = 4 * 0x1p-52

// Newton follows tangent lines from x0 towards a root of f.
//
// Iterates never leave λ ≥ 1. A step that would land below 1 is replaced by
// 1 + |dx|/2, or by exactly 1 when f(1, c) is itself zero. A zero or
// unusable derivative stops the run at the current estimate with Stalled
// set. None of these are errors; neither is exhausting cfg.MaxIterations,
// which leaves Converged unset.
//
// The clamp is a known weak point. For the expansion equation with a small
// positive c the root sits just above 1, where f′ grows like 1/√(λ−1), and
// the clamped map has a neutral fixed point near λ ≈ 1.0006. Newton then
// cycles there until cfg.MaxIterations runs out and reports Converged unset,
// while bisection still finds the root. Result.Clamps exposes how often the
// guard fired.
func Newton(f Func, df Deriv, c, x0 float64, cfg Config, obs Observer) (Result, error) {
	res := Result{Method: MethodNewton, Root: x0}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if !finite(x0) || x0 < 1 {
		return res, fmt.Errorf("initial guess %g outside λ ≥ 1: %w", x0, ErrInvalidInput)
	}
	if f(x0, c) == 0 {
		res.Converged = true
		return res, nil
	}

	x := x0
	for i := 0; i < cfg.MaxIterations; i++ {
		fx := f(x, c)
		dfx := df(x)
		if dfx == 0 || !finite(dfx) {
			res.Root, res.Iterations, res.Stalled = x, i, true
			return res, nil
		}

		dx := fx / dfx
		next := x - dx
		boundary := false
		if next < 1.0 {
			if f(1.0, c) == 0 {
				next, boundary = 1.0, true
			} else {
				next = 1.0 + math.Abs(dx)/2
				res.Clamps++
			}
		}

		notify(obs, MethodNewton, Iteration{Index: i + 1, Estimate: next, Value: fx})

		step := math.Abs(next - x)
		res.Root, res.Iterations, res.Width = next, i+1, step
		if boundary || step < cfg.Tolerance || step <= resolution*math.Abs(next) {
			res.Converged = true
			return res, nil
		}
		x = next
	}
	return res, nil
}
