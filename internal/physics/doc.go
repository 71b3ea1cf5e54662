// Package physics turns trap parameters into the coefficient C of the
// expansion equation.
//
// A cloud released from a harmonic trap of angular frequency ω₀ expands by a
// factor λ that satisfies
//
//	√(λ(λ−1)) + ln(√λ + √(λ−1)) = √2·ω₀·t
//
// so C = √2·ω₀·t is all the solvers need from the physical setup.
package physics
