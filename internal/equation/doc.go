// Package equation evaluates the expansion equation
//
//	f(λ) = √(λ(λ−1)) + ln(√λ + √(λ−1)) − C
//
// and its derivative. The valid domain is λ ≥ 1; outside it both functions
// return [OutOfDomain] instead of a NaN from √(λ−1).
//
// The product under the first root is always evaluated as √λ·√(λ−1) rather
// than √(λ²−λ) so the results near λ = 1 are reproducible across runs.
package equation
