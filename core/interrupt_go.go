//go:build !tinygo

package core

// State is the saved interrupt mask. Hosts have no interrupts, so it is
// always zero.
type State uintptr

// disableInterrupts stands in for masking around the feed sequence
func disableInterrupts() State {
	return 0
}

func restoreInterrupts(State) {}
