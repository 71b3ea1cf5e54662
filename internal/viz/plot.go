package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/sweep"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// ConvergencePlot graphs log10|f(λ)| against the iteration index.
func ConvergencePlot(its []roots.Iteration, caption string) string {
	if len(its) == 0 {
		return ""
	}
	data := make([]float64, len(its))
	for i, it := range its {
		data[i] = log10Abs(it.Value)
	}
	return plot(data, caption)
}

// EstimatePlot graphs λ against the iteration index.
func EstimatePlot(its []roots.Iteration, caption string) string {
	if len(its) == 0 {
		return ""
	}
	data := make([]float64, len(its))
	for i, it := range its {
		data[i] = it.Estimate
	}
	return plot(data, caption)
}

// SweepPlot graphs the Newton root of each entry in order.
func SweepPlot(entries []sweep.Entry, caption string) string {
	if len(entries) == 0 {
		return ""
	}
	data := make([]float64, len(entries))
	for i, e := range entries {
		data[i] = e.Report.Newton.Root
	}
	return plot(data, caption)
}

func plot(data []float64, caption string) string {
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}
	width := plotWidth
	if len(data) < width {
		width = 0
	}
	opts := []asciigraph.Option{
		asciigraph.Height(plotHeight),
		asciigraph.Caption(caption),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(data, opts...)
}
