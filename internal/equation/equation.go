package equation

import "math"

// OutOfDomain is returned for any λ outside the domain of f or f′.
var OutOfDomain = math.Inf(1)

// InDomain reports whether lambda may be passed to Value.
func InDomain(lambda float64) bool {
	return lambda >= 1 && !math.IsNaN(lambda)
}

// Value computes f(λ) for the coefficient c.
func Value(lambda, c float64) float64 {
	if !InDomain(lambda) {
		return OutOfDomain
	}
	sl := math.Sqrt(lambda)
	slm1 := math.Sqrt(lambda - 1)
	return sl*slm1 + math.Log(sl+slm1) - c
}

// Derivative computes f′(λ). It is undefined at λ = 1, where √(λ−1) vanishes
// in a denominator.
func Derivative(lambda float64) float64 {
	if lambda <= 1 || math.IsNaN(lambda) {
		return OutOfDomain
	}
	sl := math.Sqrt(lambda)
	slm1 := math.Sqrt(lambda - 1)
	radical := (2*lambda - 1) / (2 * sl * slm1)
	logarithm := (1/(2*sl) + 1/(2*slm1)) / (sl + slm1)
	return radical + logarithm
}
