// Package config loads a board's clock and watchdog settings from YAML so
// they can be checked on the host before they are compiled into firmware.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"lpcsys/core"
)

// DefaultSysTickMs is the periodic tick of the reference firmware
const DefaultSysTickMs = 250

// BoardConfig is the YAML document
type BoardConfig struct {
	Clock     ClockSection    `yaml:"clock"`
	Watchdog  WatchdogSection `yaml:"watchdog"`
	SysTickMs *uint32         `yaml:"systick_ms"`
}

// ClockSection mirrors core.ClockConfig with names instead of codes.
// Pointer fields distinguish "absent" from an explicit zero/false; only an
// absent value takes the default, an explicit zero goes to Validate.
type ClockSection struct {
	MainSource    string  `yaml:"main_source"`
	PLLSource     string  `yaml:"pll_source"`
	PLLMultiplier *uint32 `yaml:"pll_multiplier"`
	SystemDivider *uint32 `yaml:"system_divider"`
	ClkinHz       *uint32 `yaml:"clkin_hz"`
	PowerDownIRC  *bool   `yaml:"power_down_irc"`
}

// WatchdogSection mirrors core.WatchdogConfig
type WatchdogSection struct {
	Enabled       *bool   `yaml:"enabled"`
	ResetOnExpire *bool   `yaml:"reset_on_expire"`
	OscBand       string  `yaml:"osc_band"`
	OscDivider    *uint32 `yaml:"osc_divider"`
	TimeoutMs     *uint32 `yaml:"timeout_ms"`
	GuardMs       uint32  `yaml:"guard_ms"`
	WarningMs     *uint32 `yaml:"warning_ms"`
}

// Board is a loaded, validated configuration ready for core
type Board struct {
	Clock     core.ClockConfig
	Watchdog  core.WatchdogConfig
	SysTickMs uint32
}

var mainSources = map[string]core.MainSource{
	"irc":     core.MainIRC,
	"pll_in":  core.MainPLLIn,
	"wdt_osc": core.MainWDTOsc,
	"pll_out": core.MainPLLOut,
}

var pllSources = map[string]core.PLLSource{
	"irc":   core.PLLSourceIRC,
	"clkin": core.PLLSourceClkin,
}

// oscBands maps lower-case band names ("600khz", "1.05mhz", ...) to codes
var oscBands = func() map[string]core.OscBand {
	m := make(map[string]core.OscBand, core.NumOscBands)
	for b := core.OscDisabled; b < core.NumOscBands; b++ {
		m[strings.ToLower(b.String())] = b
	}
	return m
}()

// ParseOscBand accepts a band name as printed by core.OscBand.String, case
// insensitive.
func ParseOscBand(name string) (core.OscBand, error) {
	b, ok := oscBands[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown watchdog osc_band %q (valid: %s)", name, names(oscBands))
	}
	return b, nil
}

// names returns the sorted keys of a lookup table for error messages
func names[V any](m map[string]V) string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}

// Load parses a YAML board configuration, applies defaults and validates it
func Load(data []byte) (*Board, error) {
	var raw BoardConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse board config: %w", err)
	}

	applyDefaults(&raw)

	board, err := raw.resolve()
	if err != nil {
		return nil, err
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}
	return board, nil
}

// LoadFile reads and loads a YAML board configuration
func LoadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board config: %w", err)
	}
	board, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return board, nil
}

// applyDefaults fills in missing values with the reference board settings
func applyDefaults(c *BoardConfig) {
	clk := core.DefaultClockConfig()
	wdt := core.DefaultWatchdogConfig()

	if c.Clock.MainSource == "" {
		c.Clock.MainSource = clk.Main.String()
	}
	if c.Clock.PLLSource == "" {
		c.Clock.PLLSource = clk.PLLSource.String()
	}
	if c.Clock.PLLMultiplier == nil {
		c.Clock.PLLMultiplier = &clk.Multiplier
	}
	if c.Clock.SystemDivider == nil {
		c.Clock.SystemDivider = &clk.Divider
	}
	if c.Clock.ClkinHz == nil {
		c.Clock.ClkinHz = &clk.ClkinHz
	}
	if c.Clock.PowerDownIRC == nil {
		c.Clock.PowerDownIRC = &clk.PowerDownIRC
	}

	if c.Watchdog.Enabled == nil {
		c.Watchdog.Enabled = &wdt.Enabled
	}
	if c.Watchdog.ResetOnExpire == nil {
		c.Watchdog.ResetOnExpire = &wdt.ResetOnExpire
	}
	if c.Watchdog.OscBand == "" {
		c.Watchdog.OscBand = wdt.Band.String()
	}
	if c.Watchdog.OscDivider == nil {
		c.Watchdog.OscDivider = &wdt.Divider
	}
	if c.Watchdog.TimeoutMs == nil {
		c.Watchdog.TimeoutMs = &wdt.TimeoutMs
	}
	if c.Watchdog.WarningMs == nil {
		c.Watchdog.WarningMs = &wdt.WarningMs
	}

	if c.SysTickMs == nil {
		ms := uint32(DefaultSysTickMs)
		c.SysTickMs = &ms
	}
}

// resolve turns names into core codes. Called after applyDefaults.
func (c *BoardConfig) resolve() (*Board, error) {
	main, ok := mainSources[strings.ToLower(c.Clock.MainSource)]
	if !ok {
		return nil, fmt.Errorf("unknown clock main_source %q (valid: %s)", c.Clock.MainSource, names(mainSources))
	}
	pll, ok := pllSources[strings.ToLower(c.Clock.PLLSource)]
	if !ok {
		return nil, fmt.Errorf("unknown clock pll_source %q (valid: %s)", c.Clock.PLLSource, names(pllSources))
	}
	band, err := ParseOscBand(c.Watchdog.OscBand)
	if err != nil {
		return nil, err
	}

	return &Board{
		Clock: core.ClockConfig{
			Main:         main,
			PLLSource:    pll,
			Multiplier:   *c.Clock.PLLMultiplier,
			Divider:      *c.Clock.SystemDivider,
			ClkinHz:      *c.Clock.ClkinHz,
			PowerDownIRC: *c.Clock.PowerDownIRC,
		},
		Watchdog: core.WatchdogConfig{
			Enabled:       *c.Watchdog.Enabled,
			ResetOnExpire: *c.Watchdog.ResetOnExpire,
			Band:          band,
			Divider:       *c.Watchdog.OscDivider,
			TimeoutMs:     *c.Watchdog.TimeoutMs,
			GuardMs:       c.Watchdog.GuardMs,
			WarningMs:     *c.Watchdog.WarningMs,
		},
		SysTickMs: *c.SysTickMs,
	}, nil
}

// ErrWarningTruncated is wrapped by Validate when the warning time does not
// fit the 10-bit WARNINT counter and would be silently shortened.
var ErrWarningTruncated = errors.New("warning_ms exceeds the WARNINT range")

// Validate runs the core checks plus the cross-checks that need both
// sections: the watchdog oscillator as main clock and the SysTick range.
func (b *Board) Validate() error {
	if err := b.Watchdog.Validate(); err != nil {
		return fmt.Errorf("watchdog: %w", err)
	}
	if err := b.Clock.Validate(); err != nil {
		return fmt.Errorf("clock: %w", err)
	}

	ws := b.WatchdogState()
	if b.Clock.Main == core.MainWDTOsc && ws.BaseHz == 0 {
		return errors.New("clock: main_source wdt_osc needs an enabled watchdog osc_band")
	}
	if ws.BaseHz != 0 {
		if limit := ws.TicksToMs(core.WWDTWarningMax); b.Watchdog.WarningMs > limit {
			return fmt.Errorf("watchdog: %w (%dms > %dms at %dHz)", ErrWarningTruncated, b.Watchdog.WarningMs, limit, ws.OscHz())
		}
	}

	if _, err := core.SysTickReload(b.SystemClockHz(), b.SysTickMs); err != nil {
		return fmt.Errorf("systick: %w", err)
	}
	return nil
}

// WatchdogState derives the watchdog register values without hardware
func (b *Board) WatchdogState() core.WatchdogState {
	return b.Watchdog.Derive()
}

// ClockState predicts the clock frequencies without running the clock engine
func (b *Board) ClockState() core.ClockState {
	return b.Clock.Predict(b.WatchdogState())
}

// SystemClockHz predicts the system clock frequency
func (b *Board) SystemClockHz() uint32 {
	return b.ClockState().SystemHz
}
