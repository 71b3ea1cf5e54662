package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/roots"
)

// Method runs one root finder on the expansion equation.
type Method func(c float64, br roots.Bracket, cfg roots.Config, obs roots.Observer) (roots.Result, error)

type Registry struct {
	methods  map[string]Method
	describe map[string]func(roots.Bracket) string
}

func NewRegistry() *Registry {
	r := &Registry{
		methods:  make(map[string]Method),
		describe: make(map[string]func(roots.Bracket) string),
	}

	r.methods[roots.MethodBisection] = func(c float64, br roots.Bracket, cfg roots.Config, obs roots.Observer) (roots.Result, error) {
		return roots.Bisection(equation.Value, c, br.A, br.B, cfg, obs)
	}
	r.describe[roots.MethodBisection] = func(br roots.Bracket) string {
		return fmt.Sprintf("initial interval: [%g, %g]", br.A, br.B)
	}

	r.methods[roots.MethodNewton] = func(c float64, br roots.Bracket, cfg roots.Config, obs roots.Observer) (roots.Result, error) {
		return roots.Newton(equation.Value, equation.Derivative, c, br.X0, cfg, obs)
	}
	r.describe[roots.MethodNewton] = func(br roots.Bracket) string {
		return fmt.Sprintf("initial guess: λ0 = %g", br.X0)
	}

	return r
}

func (r *Registry) GetMethod(name string) (Method, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", name)
	}
	return fn, nil
}

// Describe returns the starting point of method for br in trace form.
func (r *Registry) Describe(name string, br roots.Bracket) string {
	fn, ok := r.describe[name]
	if !ok {
		return ""
	}
	return fn(br)
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
