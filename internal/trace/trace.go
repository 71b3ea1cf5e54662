// Package trace provides solver observers: an in-memory recorder for plots
// and archives, and a printer for the per-iteration console trace.
package trace

import (
	"fmt"
	"io"

	"github.com/san-kum/rootlab/internal/roots"
)

// Recorder keeps every iteration it observes, grouped by method.
type Recorder struct {
	order []string
	byKey map[string][]roots.Iteration
}

func NewRecorder() *Recorder {
	return &Recorder{byKey: make(map[string][]roots.Iteration)}
}

func (r *Recorder) OnIteration(method string, it roots.Iteration) {
	if _, ok := r.byKey[method]; !ok {
		r.order = append(r.order, method)
	}
	r.byKey[method] = append(r.byKey[method], it)
}

// Methods returns the observed methods in first-seen order.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Recorder) Iterations(method string) []roots.Iteration {
	return r.byKey[method]
}

// Residuals returns |f(λ)| per iteration for method.
func (r *Recorder) Residuals(method string) []float64 {
	its := r.byKey[method]
	out := make([]float64, len(its))
	for i, it := range its {
		v := it.Value
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}

// Printer writes one human-readable line per iteration.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Begin writes the header that precedes a solver's iteration lines.
func (p *Printer) Begin(method, detail string) {
	fmt.Fprintf(p.w, "\n%s method:\n%s\n", method, detail)
}

func (p *Printer) OnIteration(_ string, it roots.Iteration) {
	fmt.Fprintf(p.w, "iteration %d: λ = %.12f, f(λ) = %.3e\n", it.Index, it.Estimate, it.Value)
}

// End writes the closing line for a finished solver run.
func (p *Printer) End(res roots.Result) {
	if res.Converged {
		fmt.Fprintf(p.w, "solution found in %d iterations\n", res.Iterations)
		return
	}
	if res.Stalled {
		fmt.Fprintf(p.w, "stalled after %d iterations: derivative vanished\n", res.Iterations)
		return
	}
	fmt.Fprintf(p.w, "stopped after %d iterations without reaching tolerance\n", res.Iterations)
}

type multi []roots.Observer

func (m multi) OnIteration(method string, it roots.Iteration) {
	for _, o := range m {
		o.OnIteration(method, it)
	}
}

// Multi fans iterations out to every non-nil observer.
func Multi(observers ...roots.Observer) roots.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
