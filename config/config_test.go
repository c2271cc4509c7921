package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lpcsys/core"
)

func TestLoadDefaults(t *testing.T) {
	board, err := Load([]byte(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if board.Clock != core.DefaultClockConfig() {
		t.Errorf("Expected default clock config, got %+v", board.Clock)
	}
	if board.Watchdog != core.DefaultWatchdogConfig() {
		t.Errorf("Expected default watchdog config, got %+v", board.Watchdog)
	}
	if board.SysTickMs != DefaultSysTickMs {
		t.Errorf("Expected systick %dms, got %d", DefaultSysTickMs, board.SysTickMs)
	}
	if board.SystemClockHz() != core.IRCHz {
		t.Errorf("Expected %dHz, got %d", core.IRCHz, board.SystemClockHz())
	}
}

func TestLoadFullDocument(t *testing.T) {
	doc := `
clock:
  main_source: pll_out
  pll_source: clkin
  pll_multiplier: 3
  system_divider: 2
  clkin_hz: 8000000
  power_down_irc: false
watchdog:
  enabled: true
  reset_on_expire: false
  osc_band: 1.05MHz
  osc_divider: 32
  timeout_ms: 1000
  guard_ms: 100
  warning_ms: 50
systick_ms: 100
`
	board, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	clk := board.Clock
	if clk.Main != core.MainPLLOut || clk.PLLSource != core.PLLSourceClkin {
		t.Errorf("Unexpected sources %v/%v", clk.Main, clk.PLLSource)
	}
	if clk.Multiplier != 3 || clk.Divider != 2 || clk.ClkinHz != 8000000 {
		t.Errorf("Unexpected clock values %+v", clk)
	}
	if clk.PowerDownIRC {
		t.Error("Explicit power_down_irc: false was replaced by the default")
	}

	wdt := board.Watchdog
	if wdt.ResetOnExpire {
		t.Error("Explicit reset_on_expire: false was replaced by the default")
	}
	if wdt.Band != core.Osc1050kHz || wdt.Divider != 32 {
		t.Errorf("Unexpected oscillator %v/%d", wdt.Band, wdt.Divider)
	}
	if wdt.TimeoutMs != 1000 || wdt.GuardMs != 100 || wdt.WarningMs != 50 {
		t.Errorf("Unexpected times %+v", wdt)
	}

	if got := board.ClockState(); got.MainHz != 24000000 || got.SystemHz != 12000000 {
		t.Errorf("Expected 24MHz/12MHz, got %+v", got)
	}
	if board.SysTickMs != 100 {
		t.Errorf("Expected systick 100ms, got %d", board.SysTickMs)
	}
}

func TestLoadExplicitZeroes(t *testing.T) {
	doc := `
watchdog:
  enabled: false
  warning_ms: 0
`
	board, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if board.Watchdog.Enabled {
		t.Error("Explicit enabled: false was replaced by the default")
	}
	if board.Watchdog.WarningMs != 0 {
		t.Errorf("Explicit warning_ms: 0 was replaced by %d", board.Watchdog.WarningMs)
	}
	// reset_on_expire keeps its default even with the watchdog disabled
	if !board.Watchdog.ResetOnExpire {
		t.Error("reset_on_expire default lost")
	}
}

func TestParseOscBand(t *testing.T) {
	testCases := []struct {
		name string
		want core.OscBand
	}{
		{"600kHz", core.Osc600kHz},
		{"600KHZ", core.Osc600kHz},
		{" 4.60MHz ", core.Osc4600kHz},
		{"disabled", core.OscDisabled},
	}
	for _, tc := range testCases {
		got, err := ParseOscBand(tc.name)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	if _, err := ParseOscBand("5MHz"); err == nil {
		t.Error("Expected error for unknown band")
	}
}

func TestLoadUnknownNames(t *testing.T) {
	testCases := []struct {
		doc  string
		want string
	}{
		{"clock: {main_source: pll}", "valid: irc, pll_in, pll_out, wdt_osc"},
		{"clock: {pll_source: sysosc}", "valid: clkin, irc"},
		{"watchdog: {osc_band: 7MHz}", "unknown watchdog osc_band"},
	}
	for _, tc := range testCases {
		_, err := Load([]byte(tc.doc))
		if err == nil {
			t.Errorf("%q: expected error", tc.doc)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%q: expected %q in %q", tc.doc, tc.want, err)
		}
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		doc   string
		field string
	}{
		{"odd divider", "watchdog: {osc_divider: 3}", "watchdog divider"},
		{"guard exceeds timeout", "watchdog: {timeout_ms: 100, guard_ms: 200}", "watchdog guard_ms"},
		{"main clock too fast", "clock: {main_source: pll_out, pll_multiplier: 4}", "main clock"},
		{"multiplier out of range", "clock: {pll_multiplier: 33}", "pll multiplier"},
		{"systick too long", "clock: {main_source: pll_out, pll_multiplier: 2}\nsystick_ms: 1000", "systick_ms"},
		{"zero system divider", "clock: {system_divider: 0}", "system divider"},
		{"zero multiplier", "clock: {main_source: pll_out, pll_multiplier: 0}", "pll multiplier"},
		{"zero watchdog divider", "watchdog: {osc_divider: 0}", "watchdog divider"},
		{"zero clkin", "clock: {pll_source: clkin, clkin_hz: 0}", "clkin_hz"},
		{"zero systick", "systick_ms: 0", "systick_ms"},
	}

	for _, tc := range testCases {
		_, err := Load([]byte(tc.doc))
		var cerr *core.ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("%s: expected ConfigError, got %v", tc.name, err)
			continue
		}
		if cerr.Field != tc.field {
			t.Errorf("%s: expected field %q, got %q", tc.name, tc.field, cerr.Field)
		}
	}
}

func TestLoadCrossChecks(t *testing.T) {
	_, err := Load([]byte("clock: {main_source: wdt_osc}\nwatchdog: {enabled: false, osc_band: disabled}"))
	if err == nil || !strings.Contains(err.Error(), "wdt_osc") {
		t.Errorf("Expected wdt_osc cross-check error, got %v", err)
	}

	// 1023 ticks at 9375Hz is 436ms
	_, err = Load([]byte("watchdog: {warning_ms: 1000}"))
	if !errors.Is(err, ErrWarningTruncated) {
		t.Errorf("Expected ErrWarningTruncated, got %v", err)
	}
	if _, err = Load([]byte("watchdog: {warning_ms: 436}")); err != nil {
		t.Errorf("Warning at the WARNINT limit rejected: %v", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load([]byte("clock: [unterminated"))
	if err == nil || !strings.Contains(err.Error(), "parse board config") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte("systick_ms: 10\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	board, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if board.SysTickMs != 10 {
		t.Errorf("Expected systick 10ms, got %d", board.SysTickMs)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSampleBoards(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "boards", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("No sample boards found")
	}
	for _, path := range paths {
		if _, err := LoadFile(path); err != nil {
			t.Errorf("%s: %v", path, err)
		}
	}
}
