// Package viz renders the visuals in a terminal.
//
//   - [Canvas]: Braille surface, 2x4 dots per cell, with per-cell color,
//     a text overlay and raster backgrounds
//   - [Live]: Bubble Tea model running one component full screen
//   - [Theme]: color schemes; white ink takes the theme's primary color
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Remount the component
//	T      - Cycle color themes
//	G      - Toggle GIF recording
//	Arrows - Move the attention hover or the active transformer layer
//	?      - Show help overlay
//
// # Recording
//
// G records the canvas as a GIF, saved to ambient.gif in the current
// directory when recording stops.
package viz
