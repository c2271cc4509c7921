//go:build lpc810

package main

import (
	"lpcsys/core"
)

var (
	watchdog *core.Watchdog
	monitor  *core.Monitor
)

func main() {
	drv := NewLPC810RegisterDriver()

	initSwitchMatrix(drv)
	// GPIO first so the LEDs can report a failed clock setup
	gpio := NewLPC810GPIODriver(drv)
	core.SetGPIODriver(gpio)

	state, err := setup(drv)
	if err != nil {
		halt(gpio)
	}

	if err := startSysTick(state, sysTickMs); err != nil {
		halt(gpio)
	}
	watchdog.Feed()

	monitor.Run()
}

// setup starts the watchdog and brings up the configured clock tree
func setup(drv core.RegisterDriver) (core.ClockState, error) {
	wdt, err := core.NewWatchdog(drv, boardWatchdog())
	if err != nil {
		return core.ClockState{}, err
	}
	watchdog = wdt
	monitor = core.NewMonitor(wdt, monitorPins, loadCount)

	engine, err := core.NewClockEngine(drv, boardClock(), wdt)
	if err != nil {
		return core.ClockState{}, err
	}
	return engine.Init(), nil
}

// halt lights both LEDs and stops. A configuration error is a build
// mistake; there is nothing to recover.
func halt(gpio core.GPIODriver) {
	gpio.SetPins(ledInfo | ledSysTick)
	for {
	}
}

//export WDT_IRQHandler
func wdtHandler() {
	if watchdog != nil {
		watchdog.HandleInterrupt()
	}
}
