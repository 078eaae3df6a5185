package core

import "errors"

var (
	// ErrInvalidTimerMode is reported when the tick source is asked for a
	// prescaler other than TickSlow or TickFast. The timer is left unprogrammed.
	ErrInvalidTimerMode = errors.New("invalid timer mode")

	// ErrTickUnreachable is reported when a 1ms tick does not fit into the
	// 8-bit compare register at the given clock.
	ErrTickUnreachable = errors.New("1ms tick not reachable with 8-bit compare")

	// ErrInvalidDirection is reported for a stepper direction other than
	// Clockwise or CounterClockwise.
	ErrInvalidDirection = errors.New("invalid stepper direction")

	// ErrInvalidStepCount is reported in strict mode for a step count below 1.
	ErrInvalidStepCount = errors.New("step count must be positive")
)
