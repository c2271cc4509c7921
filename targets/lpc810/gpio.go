//go:build lpc810

package main

import "lpcsys/core"

const gpioResetN = 1 << 10 // PRESETCTRL GPIO_RST_N

// initSwitchMatrix assigns the fixed pin functions the board uses
func initSwitchMatrix(drv core.RegisterDriver) {
	drv.ModifyReg(core.RegSYSAHBCLKCTRL, 0, core.AHBClkSWM)
	drv.WriteReg(core.RegSWMPINENABLE0, pinEnable0)
}

// LPC810GPIODriver implements core.GPIODriver on port 0. SET0, CLR0 and NOT0
// only act on the written bits, so no read-modify-write is needed.
type LPC810GPIODriver struct{}

// NewLPC810GPIODriver clocks and resets the GPIO block and makes the LED
// pins outputs, driven low.
func NewLPC810GPIODriver(drv core.RegisterDriver) *LPC810GPIODriver {
	drv.ModifyReg(core.RegSYSAHBCLKCTRL, 0, core.AHBClkGPIO)
	sysconPRESETCTRL.ClearBits(gpioResetN)
	sysconPRESETCTRL.SetBits(gpioResetN)

	gpioCLR0.Set(uint32(ledSysTick | ledInfo))
	gpioDIR0.Set(uint32(ledSysTick | ledInfo))
	return &LPC810GPIODriver{}
}

// SetPins implements core.GPIODriver
func (d *LPC810GPIODriver) SetPins(mask core.GPIOPin) {
	gpioSET0.Set(uint32(mask))
}

// ClearPins implements core.GPIODriver
func (d *LPC810GPIODriver) ClearPins(mask core.GPIOPin) {
	gpioCLR0.Set(uint32(mask))
}

// TogglePins implements core.GPIODriver
func (d *LPC810GPIODriver) TogglePins(mask core.GPIOPin) {
	gpioNOT0.Set(uint32(mask))
}

// ReadPins implements core.GPIODriver
func (d *LPC810GPIODriver) ReadPins() core.GPIOPin {
	return core.GPIOPin(gpioPIN0.Get())
}
