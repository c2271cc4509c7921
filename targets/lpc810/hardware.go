//go:build lpc810

package main

import (
	"runtime/volatile"
	"unsafe"

	"lpcsys/core"
)

// LPC810 peripheral memory map (UM10601)
const (
	sysconBase = 0x40048000
	ioconBase  = 0x40044000
	swmBase    = 0x4000C000
	wwdtBase   = 0x40000000
	gpioBase   = 0xA0000000

	nvicISER = 0xE000E100
)

// regAddr maps each core register to its address
var regAddr = [core.NumRegs]uintptr{
	core.RegSYSAHBCLKCTRL: sysconBase + 0x080,
	core.RegPDRUNCFG:      sysconBase + 0x238,
	core.RegSYSPLLCLKSEL:  sysconBase + 0x040,
	core.RegSYSPLLCLKUEN:  sysconBase + 0x044,
	core.RegSYSPLLCTRL:    sysconBase + 0x008,
	core.RegSYSPLLSTAT:    sysconBase + 0x00C,
	core.RegMAINCLKSEL:    sysconBase + 0x070,
	core.RegMAINCLKUEN:    sysconBase + 0x074,
	core.RegSYSAHBCLKDIV:  sysconBase + 0x078,
	core.RegWDTOSCCTRL:    sysconBase + 0x024,
	core.RegIOCONPIO0_1:   ioconBase + 0x02C,
	core.RegSWMPINENABLE0: swmBase + 0x1C0,
	core.RegWWDTMOD:       wwdtBase + 0x00,
	core.RegWWDTTC:        wwdtBase + 0x04,
	core.RegWWDTFEED:      wwdtBase + 0x08,
	core.RegWWDTWINDOW:    wwdtBase + 0x18,
	core.RegWWDTWARNINT:   wwdtBase + 0x14,
}

// Registers used only by the board code
var (
	sysconPRESETCTRL = reg32(sysconBase + 0x004)

	gpioDIR0 = reg32(gpioBase + 0x2000)
	gpioPIN0 = reg32(gpioBase + 0x2100)
	gpioSET0 = reg32(gpioBase + 0x2200)
	gpioCLR0 = reg32(gpioBase + 0x2280)
	gpioNOT0 = reg32(gpioBase + 0x2300)

	systCSR  = reg32(0xE000E010)
	systRVR  = reg32(0xE000E014)
	systCVR  = reg32(0xE000E018)
	scbSHPR3 = reg32(0xE000ED20)
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// LPC810RegisterDriver implements core.RegisterDriver on the real chip
type LPC810RegisterDriver struct{}

// NewLPC810RegisterDriver creates the register driver
func NewLPC810RegisterDriver() *LPC810RegisterDriver {
	return &LPC810RegisterDriver{}
}

// ReadReg implements core.RegisterDriver
func (d *LPC810RegisterDriver) ReadReg(r core.Reg) uint32 {
	return reg32(regAddr[r]).Get()
}

// WriteReg implements core.RegisterDriver
func (d *LPC810RegisterDriver) WriteReg(r core.Reg, v uint32) {
	reg32(regAddr[r]).Set(v)
}

// ModifyReg implements core.RegisterDriver
func (d *LPC810RegisterDriver) ModifyReg(r core.Reg, clear, set uint32) {
	reg := reg32(regAddr[r])
	reg.Set(reg.Get()&^clear | set)
}

// EnableIRQ implements core.RegisterDriver
func (d *LPC810RegisterDriver) EnableIRQ(irq core.IRQ) {
	// ISER is write-one-to-set; LPC810 has fewer than 32 interrupts
	reg32(nvicISER).Set(1 << uint32(irq))
}
