package core

// OscBand selects the watchdog oscillator analog output frequency
// (WDTOSCCTRL FREQSEL).
type OscBand uint8

const (
	OscDisabled OscBand = iota
	Osc600kHz
	Osc1050kHz
	Osc1400kHz
	Osc1750kHz
	Osc2100kHz
	Osc2400kHz
	Osc2700kHz
	Osc3000kHz
	Osc3250kHz
	Osc3500kHz
	Osc3750kHz
	Osc4000kHz
	Osc4200kHz
	Osc4400kHz
	Osc4600kHz

	NumOscBands
)

// Base frequencies in Hz per FREQSEL code (UM10601 4.6.6).
var oscBandHz = [NumOscBands]uint32{
	OscDisabled: 0,
	Osc600kHz:   600000,
	Osc1050kHz:  1050000,
	Osc1400kHz:  1400000,
	Osc1750kHz:  1750000,
	Osc2100kHz:  2100000,
	Osc2400kHz:  2400000,
	Osc2700kHz:  2700000,
	Osc3000kHz:  3000000,
	Osc3250kHz:  3250000,
	Osc3500kHz:  3500000,
	Osc3750kHz:  3750000,
	Osc4000kHz:  4000000,
	Osc4200kHz:  4200000,
	Osc4400kHz:  4400000,
	Osc4600kHz:  4600000,
}

// Hz returns the undivided oscillator frequency for the band, 0 if the band
// is disabled or out of range.
func (b OscBand) Hz() uint32 {
	if b >= NumOscBands {
		return 0
	}
	return oscBandHz[b]
}

// String renders the band as it is written in the data sheet.
func (b OscBand) String() string {
	if b == OscDisabled {
		return "disabled"
	}
	hz := b.Hz()
	if hz == 0 {
		return "band" + utoa(uint32(b))
	}
	if hz < 1000000 {
		return utoa(hz/1000) + "kHz"
	}
	// Two decimals are enough for every band
	s := utoa(hz/1000000) + "." + utoa(hz/100000%10)
	if d := hz / 10000 % 10; d != 0 {
		s += utoa(d)
	} else {
		s += "0"
	}
	return s + "MHz"
}

// WDTOSCCTRL field layout
const (
	wdtOscFreqPos   = 5
	wdtOscDivOffset = 2 // DIVSEL=0 divides by 2
	wdtOscDivStep   = 2

	WDTOscDivMin = 2
	WDTOscDivMax = 64
)

// WatchdogConfig describes how the watchdog oscillator and WWDT are
// programmed at boot. Durations are in milliseconds.
type WatchdogConfig struct {
	Enabled       bool    // WDEN: start counting after the first feed
	ResetOnExpire bool    // WDRESET: reset the chip on timeout instead of interrupting
	Band          OscBand // oscillator analog frequency
	Divider       uint32  // oscillator output divider, even, 2..64
	TimeoutMs     uint32  // time without a feed before expiry
	GuardMs       uint32  // time after a feed during which another feed is illegal
	WarningMs     uint32  // time before expiry at which the warning interrupt fires, 0 = at expiry
}

// DefaultWatchdogConfig returns the reference board settings: slowest
// oscillator (9.375kHz), reset after 2s, warning 200ms before expiry.
func DefaultWatchdogConfig() WatchdogConfig {
	return WatchdogConfig{
		Enabled:       true,
		ResetOnExpire: true,
		Band:          Osc600kHz,
		Divider:       64,
		TimeoutMs:     2000,
		GuardMs:       0,
		WarningMs:     200,
	}
}

// Validate checks the configuration against the hardware ranges.
func (c WatchdogConfig) Validate() error {
	if c.Band >= NumOscBands {
		return configError("watchdog band", uint32(c.Band), "must be 0..15")
	}
	if c.Divider < WDTOscDivMin || c.Divider > WDTOscDivMax {
		return configError("watchdog divider", c.Divider, "must be 2..64")
	}
	if c.Divider%2 != 0 {
		return configError("watchdog divider", c.Divider, "must be even")
	}
	if c.GuardMs > c.TimeoutMs {
		return configError("watchdog guard_ms", c.GuardMs, "must not exceed timeout_ms")
	}
	if c.Enabled && c.Band == OscDisabled {
		return configError("watchdog band", uint32(c.Band), "oscillator disabled but watchdog enabled")
	}
	return nil
}

// oscCtrl returns the WDTOSCCTRL value for the configuration.
func (c WatchdogConfig) oscCtrl() uint32 {
	return uint32(c.Band)<<wdtOscFreqPos | (c.Divider-wdtOscDivOffset)/wdtOscDivStep
}

// mode returns the WWDT MOD value for the configuration.
func (c WatchdogConfig) mode() uint32 {
	var mod uint32
	if c.Enabled {
		mod |= WWDTEnable
	}
	if c.ResetOnExpire {
		mod |= WWDTReset
	}
	return mod
}

// WatchdogState is what Configure derived and programmed. It is computed once
// and only read afterwards.
type WatchdogState struct {
	BaseHz  uint32 // oscillator frequency before the divider
	Divider uint32

	OscCtrl uint32 // WDTOSCCTRL
	Mode    uint32 // MOD
	Timeout uint32 // TC
	Window  uint32 // WINDOW
	Warning uint32 // WARNINT
}

// OscHz returns the watchdog oscillator output frequency.
func (s WatchdogState) OscHz() uint32 {
	if s.Divider == 0 {
		return 0
	}
	return s.BaseHz / s.Divider
}

// MsToTicks converts ms into a counter value for this oscillator setting.
func (s WatchdogState) MsToTicks(ms, max uint32) uint32 {
	return MsToTicks(s.BaseHz, s.Divider, ms, max)
}

// TicksToMs converts a counter value back into milliseconds.
func (s WatchdogState) TicksToMs(ticks uint32) uint32 {
	return TicksToMs(s.BaseHz, s.Divider, ticks)
}

// Derive returns the register values Configure would program, without
// touching hardware. The configuration should have been validated.
func (c WatchdogConfig) Derive() WatchdogState {
	return deriveWatchdogState(c)
}

// deriveWatchdogState computes every register value from a validated
// configuration without touching hardware.
func deriveWatchdogState(c WatchdogConfig) WatchdogState {
	s := WatchdogState{
		BaseHz:  c.Band.Hz(),
		Divider: c.Divider,
		OscCtrl: c.oscCtrl(),
		Mode:    c.mode(),
	}
	s.Timeout = s.MsToTicks(c.TimeoutMs, WWDTCounterMax)
	s.Window = s.MsToTicks(c.TimeoutMs-c.GuardMs, WWDTWindowMax)
	s.Warning = s.MsToTicks(c.WarningMs, WWDTWarningMax)
	return s
}

// Watchdog owns the WWDT unit and its oscillator.
type Watchdog struct {
	drv        RegisterDriver
	cfg        WatchdogConfig
	state      WatchdogState
	configured bool
	warn       func()
}

// NewWatchdog validates cfg and returns a watchdog bound to drv. No register
// is written until Configure.
func NewWatchdog(drv RegisterDriver, cfg WatchdogConfig) (*Watchdog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Watchdog{
		drv:   drv,
		cfg:   cfg,
		state: deriveWatchdogState(cfg),
		warn:  func() {},
	}, nil
}

// State returns the derived oscillator and counter settings. Valid before
// Configure as well, since it is computed from the configuration alone.
func (w *Watchdog) State() WatchdogState {
	return w.state
}

// Configured reports whether Configure has run.
func (w *Watchdog) Configured() bool {
	return w.configured
}

// Configure powers the watchdog oscillator, programs the WWDT and starts it.
// It must run before any busy-wait elsewhere so that a hung wait ends in a
// watchdog reset. Calling it twice panics: WDEN and WDRESET are sticky.
func (w *Watchdog) Configure() WatchdogState {
	if w.configured {
		panic("watchdog already configured")
	}
	w.configured = true
	s := w.state

	w.drv.WriteReg(RegWDTOSCCTRL, s.OscCtrl)
	w.drv.ModifyReg(RegPDRUNCFG, PDWDTOsc, 0)
	w.drv.ModifyReg(RegSYSAHBCLKCTRL, 0, AHBClkWWDT)

	w.drv.WriteReg(RegWWDTTC, s.Timeout)
	w.drv.WriteReg(RegWWDTWINDOW, s.Window)
	w.drv.EnableIRQ(IRQWatchdog)

	w.drv.WriteReg(RegWWDTMOD, s.Mode)
	// The first feed loads TC into the counter and starts it.
	w.Feed()

	// WARNINT compares against the running counter; programming it
	// before the feed raises a warning immediately.
	w.drv.WriteReg(RegWWDTWARNINT, s.Warning)

	if IsDebugEnabled() {
		DebugPrintln("[WDT] osc=" + utoa(s.OscHz()) + "Hz tc=" + utoa(s.Timeout) +
			" window=" + utoa(s.Window) + " warn=" + utoa(s.Warning) + " mod=" + hex(s.Mode))
	}
	return s
}

// Feed writes the feed sequence. It must be called at least once per
// timeout and never within the guard time after the previous feed, which
// the hardware treats like an expiry.
//
// The two writes must not be separated by another WWDT access, so
// interrupts are masked for the duration. Feed keeps no software state and
// may be called from interrupt context.
func (w *Watchdog) Feed() {
	state := disableInterrupts()
	w.drv.WriteReg(RegWWDTFEED, FeedFirst)
	w.drv.WriteReg(RegWWDTFEED, FeedSecond)
	restoreInterrupts(state)
}

// SetWarningHandler installs the function called from the warning interrupt.
// nil restores the default no-op handler.
func (w *Watchdog) SetWarningHandler(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	w.warn = fn
}

// HandleInterrupt is the body of the WDT interrupt handler.
//
// The flags are cleared by setting WDINT and then clearing WDTOF. This is
// not the sequence the user manual documents, but it is the one that
// leaves the interrupt unstuck on the LPC810.
func (w *Watchdog) HandleInterrupt() {
	w.warn()

	w.drv.ModifyReg(RegWWDTMOD, 0, WWDTInt)
	w.drv.ModifyReg(RegWWDTMOD, WWDTTOF, 0)
}
