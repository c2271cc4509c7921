//go:build lpc810

package main

import "lpcsys/core"

const (
	systEnable    = 1 << 0
	systTickInt   = 1 << 1
	systClkSource = 1 << 2 // processor clock

	sysTickPriorityShift = 30 // SHPR3 PRI_15, top two bits on Cortex-M0+
)

// startSysTick starts a periodic interrupt every ms milliseconds of the
// system clock at the lowest priority.
func startSysTick(state core.ClockState, ms uint32) error {
	ticks, err := core.SysTickReload(state.SystemClockHz(), ms)
	if err != nil {
		return err
	}

	systCSR.Set(0)
	systRVR.Set(ticks - 1)
	systCVR.Set(0)
	scbSHPR3.ReplaceBits(3, 3, sysTickPriorityShift)
	systCSR.Set(systClkSource | systTickInt | systEnable)
	return nil
}

//export SysTick_Handler
func sysTickHandler() {
	if monitor != nil {
		monitor.SysTick()
	}
}
