//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts so no handler can touch the WWDT
// between the two feed writes.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
