// Package loop is the cooperative dispatcher behind every animation.
//
// A [Loop] owns a virtual clock and three kinds of registration:
//
//   - frame callbacks ([Loop.RequestFrame]), one-shot, run by [Loop.Frame]
//   - timers ([Loop.Every], [Loop.After]), fired by [Loop.Advance] in deadline order
//   - input listeners ([Loop.OnPointer], [Loop.OnResize]), fed by the host
//
// Components see the loop only through the [Scheduler] and [Input]
// interfaces and must cancel every ID they obtained when unmounted.
// [Loop.Pending] counts what is still outstanding.
//
// # Driving
//
// Hosts advance the clock and then run a frame:
//
//	l := loop.New()
//	comp.Mount(env)
//	for range ticker.C {
//	    l.Step(time.Second / 60)
//	}
//
// # Thread Safety
//
// Loop is NOT thread-safe. Drive it from a single goroutine (the bubbletea
// update loop, ebiten's Update, or a headless for-loop).
package loop
