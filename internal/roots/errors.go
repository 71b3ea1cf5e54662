package roots

import "errors"

var (
	// ErrInvalidInput indicates a non-positive time, a negative or non-finite
	// coefficient, or an unusable solver configuration.
	ErrInvalidInput = errors.New("roots: invalid input")

	// ErrInvalidBracket indicates that f does not change sign across [a, b].
	ErrInvalidBracket = errors.New("roots: function must change sign across bracket")

	// ErrNonConvergence indicates the iteration cap was hit before the
	// tolerance. It is never returned by a solver directly; see [Result.Err].
	ErrNonConvergence = errors.New("roots: iteration limit reached before tolerance")

	// ErrStalled indicates Newton stopped on a zero or non-finite derivative.
	ErrStalled = errors.New("roots: derivative vanished or is not finite")
)
