//go:build tinygo && cortexm

package core

import "device/arm"

// spin executes n nops. The duration depends on the clock that happens to be
// running, which is why callers treat n as a calibration constant.
func spin(n uint32) {
	for i := uint32(0); i < n; i++ {
		arm.Asm("nop")
	}
}
