package roots

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rootlab/internal/equation"
)

func TestNewtonAgreesWithBisection(t *testing.T) {
	const c = 5.0
	br, _ := SelectBracket(c)

	bis, err := Bisection(equation.Value, c, br.A, br.B, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("bisection failed: %v", err)
	}
	nwt, err := Newton(equation.Value, equation.Derivative, c, br.X0, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if !nwt.Converged {
		t.Error("newton did not converge")
	}
	if d := math.Abs(bis.Root - nwt.Root); d > 1e-9 {
		t.Errorf("roots disagree by %g (bisection %.15f, newton %.15f)", d, bis.Root, nwt.Root)
	}
	if nwt.Iterations >= bis.Iterations {
		t.Errorf("expected newton (%d) to need fewer iterations than bisection (%d)", nwt.Iterations, bis.Iterations)
	}
}

func TestNewtonZeroCoefficient(t *testing.T) {
	br, _ := SelectBracket(0)

	nwt, err := Newton(equation.Value, equation.Derivative, 0, br.X0, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if nwt.Root != 1.0 {
		t.Errorf("expected root exactly 1, got %.17g", nwt.Root)
	}
	if nwt.Iterations > 1 {
		t.Errorf("expected at most 1 iteration, got %d", nwt.Iterations)
	}
	if !nwt.Converged {
		t.Error("expected convergence onto the boundary root")
	}
}

func TestNewtonLargeCoefficient(t *testing.T) {
	const c = 1000.0
	br, _ := SelectBracket(c)
	if br.B != 1001 {
		t.Fatalf("expected b=1001, got %g", br.B)
	}

	var below int
	obs := ObserverFunc(func(_ string, it Iteration) {
		if it.Estimate < 1 {
			below++
		}
	})

	nwt, err := Newton(equation.Value, equation.Derivative, c, br.X0, DefaultConfig(), obs)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if !nwt.Converged {
		t.Errorf("expected convergence within %d iterations", DefaultMaxIterations)
	}
	if below != 0 {
		t.Errorf("%d iterates fell below 1", below)
	}
	if r := math.Abs(equation.Value(nwt.Root, c)); r > 1e-9 {
		t.Errorf("residual too large: %g", r)
	}
}

func TestNewtonIteratesStayInDomain(t *testing.T) {
	starts := []float64{1, 1.0001, 1.5, 10, 1e3, 1e6}
	coeffs := []float64{0, 1e-6, 0.01, 0.5, 5, 1000}
	cfg := Config{Tolerance: DefaultTolerance, MaxIterations: 500}

	for _, x0 := range starts {
		for _, c := range coeffs {
			obs := ObserverFunc(func(_ string, it Iteration) {
				if it.Estimate < 1 {
					t.Errorf("x0=%g c=%g: iterate %d at %g", x0, c, it.Index, it.Estimate)
				}
			})
			res, err := Newton(equation.Value, equation.Derivative, c, x0, cfg, obs)
			if err != nil {
				t.Fatalf("x0=%g c=%g: %v", x0, c, err)
			}
			if res.Root < 1 {
				t.Errorf("x0=%g c=%g: root %g below 1", x0, c, res.Root)
			}
		}
	}
}

func TestNewtonClampFormula(t *testing.T) {
	// a deliberately shallow slope throws the first step far below 1
	f := func(x, c float64) float64 { return x - c }
	df := func(float64) float64 { return 0.1 }

	var first Iteration
	obs := ObserverFunc(func(_ string, it Iteration) {
		if it.Index == 1 {
			first = it
		}
	})

	res, err := Newton(f, df, 1.2, 2, Config{Tolerance: 1e-12, MaxIterations: 1}, obs)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	// dx = 0.8/0.1 = 8, so the clamped iterate is 1 + 8/2
	if math.Abs(first.Estimate-5) > 1e-12 {
		t.Errorf("expected clamped iterate 5, got %g", first.Estimate)
	}
	if res.Clamps != 1 {
		t.Errorf("expected 1 clamp, got %d", res.Clamps)
	}
	if res.Converged {
		t.Error("single iteration should not converge")
	}
	if !errors.Is(res.Err(), ErrNonConvergence) {
		t.Errorf("expected ErrNonConvergence, got %v", res.Err())
	}
}

func TestNewtonZeroDerivative(t *testing.T) {
	f := func(x, c float64) float64 { return x - c }
	flat := func(float64) float64 { return 0 }

	res, err := Newton(f, flat, 3, 2, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("stall must not be an error: %v", err)
	}
	if res.Root != 2 || res.Iterations != 0 {
		t.Errorf("expected stall at x0 after 0 iterations, got %g after %d", res.Root, res.Iterations)
	}
	if res.Converged {
		t.Error("stalled run should not report convergence")
	}
	if !res.Stalled {
		t.Error("expected Stalled to be set")
	}
	if err := res.Err(); !errors.Is(err, ErrStalled) || errors.Is(err, ErrNonConvergence) {
		t.Errorf("expected ErrStalled only, got %v", err)
	}
}

func TestNewtonStallsAtBoundary(t *testing.T) {
	res, err := Newton(equation.Value, equation.Derivative, 1e-6, 1, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if !res.Stalled || res.Root != 1 || res.Iterations != 0 {
		t.Errorf("expected a stall at λ=1, got %+v", res)
	}
}

// The clamp 1 + |dx|/2 settles near λ ≈ 1.0006 for tiny c instead of
// reaching the root just above 1.
func TestNewtonClampCycleForSmallCoefficient(t *testing.T) {
	for _, c := range []float64{1e-6, 1e-9} {
		br, _ := SelectBracket(c)

		below := 0
		obs := ObserverFunc(func(_ string, it Iteration) {
			if it.Estimate < 1 {
				below++
			}
		})
		nwt, err := Newton(equation.Value, equation.Derivative, c, br.X0, DefaultConfig(), obs)
		if err != nil {
			t.Fatalf("c=%g: newton failed: %v", c, err)
		}
		if below != 0 {
			t.Errorf("c=%g: %d iterates fell below 1", c, below)
		}
		if nwt.Converged || nwt.Stalled {
			t.Errorf("c=%g: expected an exhausted run, got %+v", c, nwt)
		}
		if nwt.Iterations != DefaultMaxIterations || nwt.Clamps == 0 {
			t.Errorf("c=%g: expected %d clamped iterations, got %d with %d clamps", c, DefaultMaxIterations, nwt.Iterations, nwt.Clamps)
		}
		if !errors.Is(nwt.Err(), ErrNonConvergence) {
			t.Errorf("c=%g: expected ErrNonConvergence, got %v", c, nwt.Err())
		}

		bis, err := Bisection(equation.Value, c, br.A, br.B, DefaultConfig(), nil)
		if err != nil {
			t.Fatalf("c=%g: bisection failed: %v", c, err)
		}
		if !bis.Converged || math.Abs(bis.Root-1) > 1e-9 {
			t.Errorf("c=%g: bisection should converge next to 1, got %+v", c, bis)
		}
	}
}

func TestNewtonStartAtBoundary(t *testing.T) {
	res, err := Newton(equation.Value, equation.Derivative, 2, 1, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if res.Root != 1 || res.Converged {
		t.Errorf("expected stalled run at 1, got %+v", res)
	}
}

func TestNewtonExactStart(t *testing.T) {
	res, err := Newton(equation.Value, equation.Derivative, 0, 1, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if res.Root != 1 || res.Iterations != 0 || !res.Converged {
		t.Errorf("expected immediate root at 1, got %+v", res)
	}
}

func TestNewtonInvalidStart(t *testing.T) {
	for _, x0 := range []float64{0.5, -2, math.NaN(), math.Inf(1)} {
		_, err := Newton(equation.Value, equation.Derivative, 1, x0, DefaultConfig(), nil)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("x0=%g: expected ErrInvalidInput, got %v", x0, err)
		}
	}
}

func TestNewtonDeterministic(t *testing.T) {
	first, _ := Newton(equation.Value, equation.Derivative, 12.5, 7.25, DefaultConfig(), nil)
	second, _ := Newton(equation.Value, equation.Derivative, 12.5, 7.25, DefaultConfig(), nil)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestTrapScenario(t *testing.T) {
	c := math.Sqrt2 * 2 * math.Pi * 100 * 1.0
	if math.Abs(c-888.577) > 1e-3 {
		t.Fatalf("unexpected coefficient %g", c)
	}
	br, _ := SelectBracket(c)

	bis, err := Bisection(equation.Value, c, br.A, br.B, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("bisection failed: %v", err)
	}
	nwt, err := Newton(equation.Value, equation.Derivative, c, br.X0, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}

	if d := math.Abs(bis.Root - nwt.Root); d > 1e-6 {
		t.Errorf("roots disagree by %g", d)
	}
	if bis.Iterations >= 200 || nwt.Iterations >= 200 {
		t.Errorf("too many iterations: bisection %d, newton %d", bis.Iterations, nwt.Iterations)
	}
}
