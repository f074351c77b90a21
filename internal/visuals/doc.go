// Package visuals provides the decorative animation engines.
//
// Each engine implements [Component] and owns its own scheduling units on
// the host [loop.Scheduler]:
//
//   - [Field]: drifting node network attracted to the pointer
//   - [Emitter]: fixed pool of floating equation labels
//   - [Attention]: causal attention heatmap
//   - [Flow]: particles travelling through a layered network
//   - [Descent]: gradient descent on a fixed loss surface
//   - [Transformer]: explorable stack of transformer blocks
//
// Every engine also exposes its stepping and drawing methods directly so
// tests and headless runs can drive it without a host.
//
// # Lifecycle
//
// Mount registers frame callbacks, timers and listeners; Unmount cancels all
// of them. A component mounted without a usable surface stays idle and
// returns [ErrNoSurface].
//
//	f := visuals.NewField(visuals.DefaultFieldParams())
//	if err := f.Mount(env); err != nil {
//	    log.Printf("field idle: %v", err)
//	}
//	defer f.Unmount()
package visuals
