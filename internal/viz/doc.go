// Package viz renders waves in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2x4 sub-pixels per cell
//   - [Viewport]: aspect-preserving world to pixel mapping
//   - [Model]: Bubble Tea live view with theta eased by a spring
//
// # Key Bindings
//
//	Space - Pause/Resume
//	←/→   - Nudge target theta
//	↑/↓   - Scale ta
//	B     - Toggle base curve
//	T     - Cycle color themes
//	R     - Reset theta and ta
//	?     - Show help overlay
package viz
