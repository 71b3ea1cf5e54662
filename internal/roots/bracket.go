package roots

import (
	"fmt"
	"math"
)

// SelectBracket derives the bisection interval and Newton start from c.
//
// f(1, c) = −c ≤ 0 and f grows without bound, so b = c+1 always closes the
// bracket; the floor of 2 keeps the interval wide when c is near zero.
func SelectBracket(c float64) (Bracket, error) {
	if !finite(c) || c < 0 {
		return Bracket{}, fmt.Errorf("coefficient must be finite and non-negative, got %g: %w", c, ErrInvalidInput)
	}
	a := 1.0
	b := math.Max(2.0, c+1.0)
	return Bracket{A: a, B: b, X0: (a + b) / 2}, nil
}
