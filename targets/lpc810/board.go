//go:build lpc810

package main

import "lpcsys/core"

// Pin use of the DIP8 reference board:
//
//	pin 1 PIO0_5 LED_INFO     toggles with main loop progress, set on watchdog warning
//	pin 2 PIO0_4 IN_PORT      pulled up; hold low to simulate a lockup
//	pin 5 CLKIN               external clock input when the PLL source is CLKIN
//	pin 8 PIO0_0 LED_SYSTICK  toggles every SysTick period
const (
	ledSysTick core.GPIOPin = 1 << 0
	inPort     core.GPIOPin = 1 << 4
	ledInfo    core.GPIOPin = 1 << 5
)

var monitorPins = core.MonitorPins{
	Info:    ledInfo,
	SysTick: ledSysTick,
	Lockup:  inPort,
}

const (
	// Enables SWCLK, SWDIO and CLKIN; every other fixed function is off
	pinEnable0 = 0xFFFFFF73

	sysTickMs = 250

	// Main loop iterations between LED_INFO toggles
	loadCount = 0xFFFF
)

// boardClock is the clock configuration compiled into the firmware
func boardClock() core.ClockConfig {
	return core.DefaultClockConfig()
}

// boardWatchdog is the watchdog configuration compiled into the firmware
func boardWatchdog() core.WatchdogConfig {
	return core.DefaultWatchdogConfig()
}
