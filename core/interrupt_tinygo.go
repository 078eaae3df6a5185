//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts clears the global interrupt flag and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts puts the global interrupt flag back the way it was
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
