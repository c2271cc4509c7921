package core

// Clock frequencies for the LPC810
const (
	IRCHz     = 12000000 // internal RC oscillator, nominal
	ClkinHz   = 12000000 // default frequency expected on the CLKIN pin
	MaxMainHz = 30000000 // rated maximum for the LPC8xx family
)

// PLL and divider ranges
const (
	PLLMultiplierMin = 1
	PLLMultiplierMax = 32
	SysDividerMin    = 1
	SysDividerMax    = 255
)

// ClkinSettleSpins is the number of nop iterations spent after routing CLKIN
// before the input is trusted. It is a platform calibration value taken
// from the vendor SystemInit, not a timed delay.
const ClkinSettleSpins = 200

// MainSource selects what drives the main clock (MAINCLKSEL).
type MainSource uint8

const (
	MainIRC    MainSource = MainClkSelIRC    // internal oscillator
	MainPLLIn  MainSource = MainClkSelPLLIn  // PLL input, PLL bypassed
	MainWDTOsc MainSource = MainClkSelWDTOsc // watchdog oscillator
	MainPLLOut MainSource = MainClkSelPLLOut // PLL output
)

func (m MainSource) String() string {
	switch m {
	case MainIRC:
		return "irc"
	case MainPLLIn:
		return "pll_in"
	case MainWDTOsc:
		return "wdt_osc"
	case MainPLLOut:
		return "pll_out"
	}
	return "main" + utoa(uint32(m))
}

// PLLSource selects the PLL input clock (SYSPLLCLKSEL).
type PLLSource uint8

const (
	PLLSourceIRC   PLLSource = PLLClkSelIRC
	PLLSourceClkin PLLSource = PLLClkSelIn
)

func (p PLLSource) String() string {
	switch p {
	case PLLSourceIRC:
		return "irc"
	case PLLSourceClkin:
		return "clkin"
	}
	return "pllsrc" + utoa(uint32(p))
}

// ClockConfig describes the clock tree selected at boot.
type ClockConfig struct {
	Main         MainSource
	PLLSource    PLLSource
	Multiplier   uint32 // PLL multiplier, 1..32
	Divider      uint32 // system clock divider, 1..255
	ClkinHz      uint32 // frequency supplied on CLKIN, used when PLLSource is PLLSourceClkin
	PowerDownIRC bool   // power the IRC down when nothing selected needs it
}

// DefaultClockConfig returns the reference board settings: 12MHz IRC
// straight through, IRC power-down allowed.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		Main:         MainIRC,
		PLLSource:    PLLSourceIRC,
		Multiplier:   1,
		Divider:      1,
		ClkinHz:      ClkinHz,
		PowerDownIRC: true,
	}
}

// pllInputHz returns the PLL input frequency for the configuration.
func (c ClockConfig) pllInputHz() uint32 {
	if c.PLLSource == PLLSourceClkin {
		return c.ClkinHz
	}
	return IRCHz
}

// mainHz returns the main clock frequency for every source except the
// watchdog oscillator, whose frequency belongs to the watchdog settings.
func (c ClockConfig) mainHz() uint64 {
	switch c.Main {
	case MainPLLIn:
		return uint64(c.pllInputHz())
	case MainPLLOut:
		return uint64(c.pllInputHz()) * uint64(c.Multiplier)
	}
	return IRCHz
}

// Validate checks the configuration against the hardware ranges and the
// rated maximum frequency.
func (c ClockConfig) Validate() error {
	switch c.Main {
	case MainIRC, MainPLLIn, MainWDTOsc, MainPLLOut:
	default:
		return configError("main clock source", uint32(c.Main), "unknown source")
	}
	switch c.PLLSource {
	case PLLSourceIRC:
	case PLLSourceClkin:
		if c.ClkinHz == 0 {
			return configError("clkin_hz", c.ClkinHz, "required when the PLL input is CLKIN")
		}
	default:
		return configError("pll source", uint32(c.PLLSource), "unknown source")
	}
	if c.Multiplier < PLLMultiplierMin || c.Multiplier > PLLMultiplierMax {
		return configError("pll multiplier", c.Multiplier, "must be 1..32")
	}
	if c.Divider < SysDividerMin || c.Divider > SysDividerMax {
		return configError("system divider", c.Divider, "must be 1..255")
	}
	if c.Main != MainWDTOsc {
		if hz := c.mainHz(); hz > MaxMainHz {
			return configError("main clock", uint32(min(hz, 0xFFFFFFFF)), "exceeds 30000000Hz")
		}
	}
	return nil
}

// Predict returns the frequencies Init would produce for a validated
// configuration. ws supplies the oscillator when Main is MainWDTOsc.
func (c ClockConfig) Predict(ws WatchdogState) ClockState {
	main := uint32(c.mainHz())
	if c.Main == MainWDTOsc {
		main = ws.OscHz()
	}
	s := ClockState{MainHz: main}
	if c.Divider != 0 {
		s.SystemHz = main / c.Divider
	}
	return s
}

// ClockState holds the frequencies that result from clock initialisation.
// It is written once by ClockEngine.Init and read-only afterwards.
type ClockState struct {
	MainHz   uint32 // main clock, before the system divider
	SystemHz uint32 // system clock: MainHz / divider
}

// MainClockHz returns the main clock frequency. USART baud rates and IOCON
// filter clocks derive from it.
func (s ClockState) MainClockHz() uint32 {
	return s.MainHz
}

// SystemClockHz returns the system (core/AHB) clock frequency.
func (s ClockState) SystemClockHz() uint32 {
	return s.SystemHz
}

// ClockEngine selects and locks the clock sources.
type ClockEngine struct {
	drv         RegisterDriver
	cfg         ClockConfig
	wdt         *Watchdog
	spinLimit   uint32
	initialized bool
}

// NewClockEngine validates cfg, cross-checked against the watchdog when the
// watchdog oscillator is the main clock. No register is written until Init.
func NewClockEngine(drv RegisterDriver, cfg ClockConfig, wdt *Watchdog) (*ClockEngine, error) {
	if wdt == nil {
		panic("clock engine needs a watchdog")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Main == MainWDTOsc {
		ws := wdt.State()
		if ws.BaseHz == 0 {
			return nil, configError("main clock source", uint32(cfg.Main), "watchdog oscillator is disabled")
		}
		if ws.OscHz() > MaxMainHz {
			return nil, configError("main clock", ws.OscHz(), "exceeds 30000000Hz")
		}
	}
	return &ClockEngine{drv: drv, cfg: cfg, wdt: wdt}, nil
}

// SetSpinLimit bounds every busy-wait to n polls; 0 restores the hardware
// behaviour of waiting forever. When the bound is hit Init panics with a
// *StallError. Only useful on hosts, where no watchdog ends the wait.
func (e *ClockEngine) SetSpinLimit(n uint32) {
	e.spinLimit = n
}

// Init starts the watchdog, switches the main clock to the configured source,
// programs the system divider and returns the resulting frequencies.
//
// Init has no error path. Waits for the PLL lock and the clock update
// acknowledgements are unbounded; if the hardware never answers, the
// watchdog started in the first step resets the chip. It must be called
// once; a second call panics.
func (e *ClockEngine) Init() ClockState {
	if e.initialized {
		panic("clocks already initialized")
	}
	e.initialized = true

	// Watchdog first, so every wait below is bounded by a reset.
	ws := e.wdt.Configure()

	e.drv.ModifyReg(RegSYSAHBCLKCTRL, 0, AHBClkSWM|AHBClkIOCON)

	pllInHz := uint32(IRCHz)
	pllFromIRC := true
	if e.cfg.PLLSource == PLLSourceClkin {
		e.drv.ModifyReg(RegIOCONPIO0_1, IOCONModeMask, 0)
		e.drv.ModifyReg(RegSWMPINENABLE0, SWMClkinDisable, 0)
		spin(ClkinSettleSpins)
		pllInHz = e.cfg.ClkinHz
		pllFromIRC = false
	}

	e.drv.WriteReg(RegSYSPLLCLKSEL, uint32(e.cfg.PLLSource))
	e.drv.WriteReg(RegSYSPLLCLKUEN, ClkUpdate)
	e.waitBits(RegSYSPLLCLKUEN, ClkUpdate, ClkUpdate)

	ircNeeded := true
	var mainHz uint32
	switch e.cfg.Main {
	case MainIRC:
		mainHz = IRCHz
	case MainPLLIn:
		mainHz = pllInHz
		ircNeeded = pllFromIRC
	case MainPLLOut:
		// Post divider (PSEL) does not work on this family and is
		// left at reset.
		e.drv.WriteReg(RegSYSPLLCTRL, e.cfg.Multiplier-pllMSELOffset)
		e.drv.ModifyReg(RegPDRUNCFG, PDSysPLL, 0)
		e.waitBits(RegSYSPLLSTAT, PLLLocked, PLLLocked)
		mainHz = pllInHz * e.cfg.Multiplier
		ircNeeded = pllFromIRC
	case MainWDTOsc:
		mainHz = ws.OscHz()
		ircNeeded = false
	}

	e.drv.WriteReg(RegMAINCLKSEL, uint32(e.cfg.Main))
	e.drv.WriteReg(RegMAINCLKUEN, ClkUpdate)
	e.waitBits(RegMAINCLKUEN, ClkUpdate, ClkUpdate)

	if e.cfg.PowerDownIRC && !ircNeeded {
		e.drv.ModifyReg(RegPDRUNCFG, 0, PDIRCOut|PDIRC)
	}

	e.drv.WriteReg(RegSYSAHBCLKDIV, e.cfg.Divider)

	state := ClockState{
		MainHz:   mainHz,
		SystemHz: mainHz / e.cfg.Divider,
	}
	if IsDebugEnabled() {
		DebugPrintln("[CLK] main=" + e.cfg.Main.String() + " " + utoa(state.MainHz) +
			"Hz sys=" + utoa(state.SystemHz) + "Hz")
	}
	return state
}

// waitBits polls reg until the masked bits equal want.
func (e *ClockEngine) waitBits(reg Reg, mask, want uint32) {
	var n uint32
	for e.drv.ReadReg(reg)&mask != want {
		n++
		if e.spinLimit != 0 && n >= e.spinLimit {
			panic(&StallError{Reg: reg, Mask: mask, Spins: n})
		}
	}
}
