package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/roots"
)

// PlainSummary is the comparison block without styling.
func PlainSummary(rep *experiment.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "solution for C = %g\n", rep.C)
	if rep.Time > 0 {
		fmt.Fprintf(&b, "t = %g s, trap frequency = %g Hz\n", rep.Time, rep.FrequencyHz)
	}
	fmt.Fprintf(&b, "bisection: λ = %.12f, iter = %d\n", rep.Bisection.Root, rep.Bisection.Iterations)
	fmt.Fprintf(&b, "newton:    λ = %.12f, iter = %d\n", rep.Newton.Root, rep.Newton.Iterations)
	fmt.Fprintf(&b, "difference: %.16e", rep.Difference)
	return b.String()
}

// RenderSummary is PlainSummary in a styled panel with convergence status.
func RenderSummary(rep *experiment.Report) string {
	rows := []string{
		Title.Render("comparison of results"),
		"",
		MetricLabel.Render("C          ") + MetricValue.Render(fmt.Sprintf("%g", rep.C)),
	}
	if rep.Time > 0 {
		rows = append(rows,
			MetricLabel.Render("t          ")+MetricValue.Render(fmt.Sprintf("%g s", rep.Time)),
			MetricLabel.Render("frequency  ")+MetricValue.Render(fmt.Sprintf("%g Hz", rep.FrequencyHz)),
		)
	}
	rows = append(rows,
		resultRow(rep.Bisection),
		resultRow(rep.Newton),
		MetricLabel.Render("difference ")+MetricValue.Render(fmt.Sprintf("%.16e", rep.Difference)),
	)
	return Panel.Render(strings.Join(rows, "\n"))
}

func resultRow(res roots.Result) string {
	status := StatusConverged.Render("converged")
	switch {
	case res.Stalled:
		status = StatusStalled.Render("stalled")
	case !res.Converged:
		status = StatusStalled.Render("not converged")
	}
	line := fmt.Sprintf("λ = %.12f, iter = %d", res.Root, res.Iterations)
	if res.Clamps > 0 {
		line += fmt.Sprintf(", clamps = %d", res.Clamps)
	}
	return MetricLabel.Render(fmt.Sprintf("%-11s", res.Method)) + MetricValue.Render(line) + "  " + status
}
