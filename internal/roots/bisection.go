package roots

import "fmt"

// Bisection halves [a, b] until it is no wider than cfg.Tolerance.
//
// An endpoint that is already an exact root is returned with zero
// iterations. Otherwise f(a) and f(b) must have strictly opposite signs.
// Exhausting cfg.MaxIterations is not an error: the midpoint is returned
// with Converged unset.
func Bisection(f Func, c, a, b float64, cfg Config, obs Observer) (Result, error) {
	res := Result{Method: MethodBisection}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if !finite(a) || !finite(b) || a >= b {
		return res, fmt.Errorf("bracket [%g, %g]: %w", a, b, ErrInvalidBracket)
	}

	fa, fb := f(a, c), f(b, c)
	if fa == 0 {
		res.Root, res.Converged, res.Width = a, true, b-a
		return res, nil
	}
	if fb == 0 {
		res.Root, res.Converged, res.Width = b, true, b-a
		return res, nil
	}
	if fa*fb >= 0 {
		return res, fmt.Errorf("f(%g)=%g, f(%g)=%g: %w", a, fa, b, fb, ErrInvalidBracket)
	}

	i := 0
	resolved := false
	for b-a > cfg.Tolerance && i < cfg.MaxIterations {
		mid := (a + b) / 2
		// no representable point left strictly inside the bracket
		if mid <= a || mid >= b {
			resolved = true
			break
		}
		fm := f(mid, c)
		switch {
		case fm == 0:
			// collapse onto the exact root so the width check stops the loop
			a, b = mid, mid
		case fa*fm < 0:
			b = mid
		default:
			a, fa = mid, fm
		}
		i++
		notify(obs, MethodBisection, Iteration{Index: i, Estimate: mid, Value: fm})
	}

	res.Root = (a + b) / 2
	res.Iterations = i
	res.Width = b - a
	res.Converged = b-a <= cfg.Tolerance || resolved
	return res, nil
}
