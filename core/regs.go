package core

// Reg identifies one of the memory-mapped registers the core reads or writes.
// Addresses are resolved by the RegisterDriver implementation.
type Reg uint8

const (
	RegSYSAHBCLKCTRL Reg = iota // SYSCON AHB clock gating
	RegPDRUNCFG                 // SYSCON power-down configuration
	RegSYSPLLCLKSEL             // SYSCON PLL input select
	RegSYSPLLCLKUEN             // SYSCON PLL input update enable
	RegSYSPLLCTRL               // SYSCON PLL multiplier/post divider
	RegSYSPLLSTAT               // SYSCON PLL status
	RegMAINCLKSEL               // SYSCON main clock select
	RegMAINCLKUEN               // SYSCON main clock update enable
	RegSYSAHBCLKDIV             // SYSCON system clock divider
	RegWDTOSCCTRL               // SYSCON watchdog oscillator control
	RegIOCONPIO0_1              // IOCON pin configuration for PIO0_1 (CLKIN)
	RegSWMPINENABLE0            // switch matrix fixed-pin enable
	RegWWDTMOD                  // WWDT mode
	RegWWDTTC                   // WWDT timer constant
	RegWWDTFEED                 // WWDT feed sequence
	RegWWDTWINDOW               // WWDT window
	RegWWDTWARNINT              // WWDT warning interrupt compare

	NumRegs
)

var regNames = [NumRegs]string{
	RegSYSAHBCLKCTRL: "SYSAHBCLKCTRL",
	RegPDRUNCFG:      "PDRUNCFG",
	RegSYSPLLCLKSEL:  "SYSPLLCLKSEL",
	RegSYSPLLCLKUEN:  "SYSPLLCLKUEN",
	RegSYSPLLCTRL:    "SYSPLLCTRL",
	RegSYSPLLSTAT:    "SYSPLLSTAT",
	RegMAINCLKSEL:    "MAINCLKSEL",
	RegMAINCLKUEN:    "MAINCLKUEN",
	RegSYSAHBCLKDIV:  "SYSAHBCLKDIV",
	RegWDTOSCCTRL:    "WDTOSCCTRL",
	RegIOCONPIO0_1:   "IOCON_PIO0_1",
	RegSWMPINENABLE0: "PINENABLE0",
	RegWWDTMOD:       "WWDT_MOD",
	RegWWDTTC:        "WWDT_TC",
	RegWWDTFEED:      "WWDT_FEED",
	RegWWDTWINDOW:    "WWDT_WINDOW",
	RegWWDTWARNINT:   "WWDT_WARNINT",
}

// String returns the user manual name of the register.
func (r Reg) String() string {
	if r < NumRegs {
		return regNames[r]
	}
	return "REG" + utoa(uint32(r))
}

// IRQ is a Cortex-M0+ external interrupt number.
type IRQ uint8

// IRQWatchdog is the WWDT warning/timeout interrupt line (WDT_IRQn).
const IRQWatchdog IRQ = 12

// SYSAHBCLKCTRL bits (1 = clock enabled)
const (
	AHBClkGPIO  = 1 << 6
	AHBClkSWM   = 1 << 7
	AHBClkWWDT  = 1 << 17
	AHBClkIOCON = 1 << 18
)

// PDRUNCFG bits (1 = powered down)
const (
	PDIRCOut = 1 << 0
	PDIRC    = 1 << 1
	PDWDTOsc = 1 << 6
	PDSysPLL = 1 << 7
)

// Clock select and update registers
const (
	PLLClkSelMask = 0x3
	PLLClkSelIRC  = 0x0
	PLLClkSelIn   = 0x3 // CLKIN pin

	MainClkSelMask   = 0x3
	MainClkSelIRC    = 0x0
	MainClkSelPLLIn  = 0x1
	MainClkSelWDTOsc = 0x2
	MainClkSelPLLOut = 0x3

	ClkUpdate = 1 << 0 // SYSPLLCLKUEN / MAINCLKUEN acknowledge bit
	PLLLocked = 1 << 0 // SYSPLLSTAT lock bit

	// SYSPLLCTRL MSEL=0 means multiply by one.
	pllMSELOffset = 1
)

// IOCON and switch matrix bits used on the CLKIN path
const (
	IOCONModeMask   = 0x3 << 3 // pull-up/pull-down selection
	SWMClkinDisable = 1 << 7   // PINENABLE0: 0 routes CLKIN to PIO0_1
)

// WWDT MOD bits. WDEN and WDRESET cannot be cleared once set.
const (
	WWDTEnable = 1 << 0
	WWDTReset  = 1 << 1
	WWDTTOF    = 1 << 2
	WWDTInt    = 1 << 3
)

// Counter maxima
const (
	WWDTCounterMax = 0xFFFFFF
	WWDTWindowMax  = 0xFFFFFF
	WWDTWarningMax = 0x3FF
)

// Feed sequence values, written in this order.
const (
	FeedFirst  = 0xAA
	FeedSecond = 0x55
)
