// Package viz is the terminal front end of geodesim.
//
// It drives a [player.Session] from a Bubble Tea program:
//
//   - [Model]: the player screen with the progress grid, status line and
//     coverage bar
//   - [Menu]: preset picker shown before the player when no input is given
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	R       - Reset to the current input
//	S/Enter - Step one minute
//	T       - Step a batch (10 by default)
//	Space/P - Play/Pause
//	O       - Open an input file
//	E       - Export the current drawing as SVG
//	G       - Toggle GIF recording
//	C       - Cycle color themes
//	?       - Show help overlay
//	Q       - Quit
//
// Animation frames are tea.Tick messages carrying the session's play
// token, so a frame scheduled before a pause is dropped. File reads run as
// commands carrying a load ticket and only the newest read is applied.
package viz
