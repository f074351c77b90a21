package visuals

import "errors"

var (
	// ErrNoSurface indicates a missing or zero-sized drawing surface. The
	// component stays idle.
	ErrNoSurface = errors.New("visuals: no drawing surface")

	// ErrNoScheduler indicates Mount was called without a scheduler.
	ErrNoScheduler = errors.New("visuals: no scheduler")

	// ErrMounted indicates Mount was called on a component that is already running.
	ErrMounted = errors.New("visuals: component already mounted")

	// ErrUnknownBlock indicates a transformer block key that does not exist.
	ErrUnknownBlock = errors.New("visuals: unknown transformer block")
)
