package core

// MonitorPins assigns the pins of the reference application
type MonitorPins struct {
	Info    GPIOPin // toggles with loop progress, set by the watchdog warning
	SysTick GPIOPin // toggles every SysTick period
	Lockup  GPIOPin // input; held low, the loop stops feeding the watchdog
}

// Monitor is the reference application. Its main loop shows how fast the
// system clock runs, feeds the watchdog and, while the lockup input is held
// low, stops feeding so the watchdog can be seen to fire.
type Monitor struct {
	wdt    *Watchdog
	gpio   GPIODriver
	pins   MonitorPins
	period uint32
	count  uint32
}

// NewMonitor creates the application. The info pin toggles once every
// period loop iterations. It installs the watchdog warning handler.
func NewMonitor(wdt *Watchdog, pins MonitorPins, period uint32) *Monitor {
	m := &Monitor{
		wdt:    wdt,
		gpio:   MustGPIO(),
		pins:   pins,
		period: period,
		count:  period,
	}
	wdt.SetWarningHandler(func() {
		m.gpio.SetPins(m.pins.Info)
	})
	return m
}

// Step runs one main loop iteration. While the lockup input is low it
// blocks without feeding the watchdog.
func (m *Monitor) Step() {
	if m.count++; m.count >= m.period {
		m.count = 0
		m.gpio.TogglePins(m.pins.Info)
	}

	if m.lockupHeld() {
		m.gpio.ClearPins(m.pins.Info)
		for m.lockupHeld() {
		}
	}

	m.wdt.Feed()
}

// Run loops forever
func (m *Monitor) Run() {
	for {
		m.Step()
	}
}

// SysTick is the body of the SysTick handler
func (m *Monitor) SysTick() {
	SysTickElapsed()
	m.gpio.TogglePins(m.pins.SysTick)
}

func (m *Monitor) lockupHeld() bool {
	return m.gpio.ReadPins()&m.pins.Lockup == 0
}
