package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/rootlab/internal/roots"
)

const (
	DefaultFrequencyHz = 100.0
	MinFrequencyHz     = 10.0
	MaxFrequencyHz     = 10e3
)

// Omega0 converts a trap frequency in Hz to an angular frequency in rad/s.
func Omega0(hz float64) float64 {
	return 2 * math.Pi * hz
}

// TypicalFrequency reports whether hz lies in the usual 10 Hz–10 kHz range of
// trapping frequencies.
func TypicalFrequency(hz float64) bool {
	return hz >= MinFrequencyHz && hz <= MaxFrequencyHz
}

// Coefficient returns C = √2·ω₀·t for the expansion equation.
func Coefficient(omega0, t float64) (float64, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return 0, fmt.Errorf("time must be positive, got %g: %w", t, roots.ErrInvalidInput)
	}
	if math.IsNaN(omega0) || math.IsInf(omega0, 0) || omega0 <= 0 {
		return 0, fmt.Errorf("trap frequency must be positive, got %g: %w", omega0, roots.ErrInvalidInput)
	}
	return math.Sqrt2 * omega0 * t, nil
}
