// Package viz renders rootlab results in the terminal: a styled comparison
// summary, asciigraph convergence and sweep plots, and a Bubble Tea replay of
// both solver traces.
//
// # Key Bindings (replay)
//
//	Space - Pause/Resume
//	←/→   - Step backward/forward
//	R     - Restart
//	End   - Skip to the final iteration
//	Q     - Quit
package viz
