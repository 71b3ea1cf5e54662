// Package roots implements the two root finders compared by rootlab:
// interval bisection and Newton's method, plus the bracket selection that
// seeds both from the coefficient C alone.
//
//	br, _ := roots.SelectBracket(c)
//	bis, _ := roots.Bisection(equation.Value, c, br.A, br.B, roots.DefaultConfig(), nil)
//	nwt, _ := roots.Newton(equation.Value, equation.Derivative, c, br.X0, roots.DefaultConfig(), nil)
//
// Solvers are pure: they keep all loop state locally, never perform I/O and
// report progress only through an optional [Observer].
package roots
