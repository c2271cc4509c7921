package sim

import (
	"strings"
	"testing"

	"lpcsys/core"
)

func boot(t *testing.T, f *RegisterFile, cfg core.ClockConfig, wcfg core.WatchdogConfig) (*core.Watchdog, core.ClockState) {
	t.Helper()
	wdt, err := core.NewWatchdog(f, wcfg)
	if err != nil {
		t.Fatalf("NewWatchdog failed: %v", err)
	}
	engine, err := core.NewClockEngine(f, cfg, wdt)
	if err != nil {
		t.Fatalf("NewClockEngine failed: %v", err)
	}
	engine.SetSpinLimit(10000)
	return wdt, engine.Init()
}

func TestBootDefaultBoard(t *testing.T) {
	f := New()
	_, state := boot(t, f, core.DefaultClockConfig(), core.DefaultWatchdogConfig())

	if state.SystemClockHz() != core.IRCHz {
		t.Errorf("Expected %dHz, got %d", core.IRCHz, state.SystemClockHz())
	}
	if !f.WatchdogRunning() {
		t.Error("Watchdog not running after boot")
	}
	if f.Feeds() != 1 || f.FeedErrors() != 0 {
		t.Errorf("Expected exactly one clean feed, got %d feeds %d errors", f.Feeds(), f.FeedErrors())
	}
	if !f.IRQEnabled(core.IRQWatchdog) {
		t.Error("WDT interrupt not enabled")
	}
	if f.Peek(core.RegWWDTTC) != 4687 || f.Peek(core.RegWWDTWINDOW) != 4687 || f.Peek(core.RegWWDTWARNINT) != 468 {
		t.Errorf("Unexpected counters TC=%d WINDOW=%d WARNINT=%d",
			f.Peek(core.RegWWDTTC), f.Peek(core.RegWWDTWINDOW), f.Peek(core.RegWWDTWARNINT))
	}
	// Default board keeps the IRC because it is the main clock
	if f.IRCPoweredDown() {
		t.Error("IRC powered down on an IRC-clocked board")
	}
}

func TestBootWithDelayedAcknowledge(t *testing.T) {
	f := New()
	f.AckDelay = 5
	f.LockDelay = 20
	f.LogReads = true

	cfg := core.DefaultClockConfig()
	cfg.Main = core.MainPLLOut
	cfg.Multiplier = 2
	_, state := boot(t, f, cfg, core.DefaultWatchdogConfig())

	if state.MainClockHz() != 24000000 {
		t.Errorf("Expected 24MHz main clock, got %d", state.MainClockHz())
	}

	var statReads, mainUENReads int
	for _, a := range f.Log() {
		if a.Op != OpRead {
			continue
		}
		switch a.Reg {
		case core.RegSYSPLLSTAT:
			statReads++
		case core.RegMAINCLKUEN:
			mainUENReads++
		}
	}
	if statReads != f.LockDelay+1 {
		t.Errorf("Expected %d SYSPLLSTAT polls, got %d", f.LockDelay+1, statReads)
	}
	if mainUENReads != f.AckDelay+1 {
		t.Errorf("Expected %d MAINCLKUEN polls, got %d", f.AckDelay+1, mainUENReads)
	}
}

func TestBootWatchdogOscillatorPowersDownIRC(t *testing.T) {
	f := New()
	cfg := core.DefaultClockConfig()
	cfg.Main = core.MainWDTOsc
	_, state := boot(t, f, cfg, core.DefaultWatchdogConfig())

	if state.MainClockHz() != 9375 {
		t.Errorf("Expected 9375Hz main clock, got %d", state.MainClockHz())
	}
	if !f.IRCPoweredDown() {
		t.Error("IRC still powered")
	}
}

func TestMODSemantics(t *testing.T) {
	f := New()

	f.WriteReg(core.RegWWDTMOD, core.WWDTEnable|core.WWDTReset)
	f.WriteReg(core.RegWWDTMOD, 0)
	if got := f.Peek(core.RegWWDTMOD); got != core.WWDTEnable|core.WWDTReset {
		t.Errorf("WDEN/WDRESET should be sticky, MOD=0x%X", got)
	}

	f.RaiseWarning(true)
	if f.Peek(core.RegWWDTMOD)&(core.WWDTInt|core.WWDTTOF) != core.WWDTInt|core.WWDTTOF {
		t.Fatal("RaiseWarning did not set the flags")
	}

	// Writing zero to WDINT leaves it pending; WDTOF takes the written value
	f.WriteReg(core.RegWWDTMOD, core.WWDTEnable|core.WWDTReset)
	if f.Peek(core.RegWWDTMOD)&core.WWDTInt == 0 {
		t.Error("WDINT cleared by a write of zero")
	}
	if f.Peek(core.RegWWDTMOD)&core.WWDTTOF != 0 {
		t.Error("WDTOF not cleared by a write of zero")
	}
	f.ModifyReg(core.RegWWDTMOD, 0, core.WWDTInt)
	if f.Peek(core.RegWWDTMOD)&core.WWDTInt != 0 {
		t.Error("WDINT not cleared by writing one")
	}
}

func TestHandleInterruptClearsFlags(t *testing.T) {
	f := New()
	wdt, _ := boot(t, f, core.DefaultClockConfig(), core.DefaultWatchdogConfig())

	warned := false
	wdt.SetWarningHandler(func() { warned = true })

	f.RaiseWarning(true)
	wdt.HandleInterrupt()

	if !warned {
		t.Error("Warning handler not invoked")
	}
	mod := f.Peek(core.RegWWDTMOD)
	if mod&(core.WWDTInt|core.WWDTTOF) != 0 {
		t.Errorf("Flags still pending after interrupt, MOD=0x%X", mod)
	}
	if mod&(core.WWDTEnable|core.WWDTReset) != core.WWDTEnable|core.WWDTReset {
		t.Errorf("Mode bits lost, MOD=0x%X", mod)
	}
}

func TestFeedSequenceDetection(t *testing.T) {
	f := New()
	wdt, err := core.NewWatchdog(f, core.DefaultWatchdogConfig())
	if err != nil {
		t.Fatalf("NewWatchdog failed: %v", err)
	}

	wdt.Feed()
	wdt.Feed()
	if f.Feeds() != 2 || f.FeedErrors() != 0 {
		t.Errorf("Expected 2 feeds, got %d (%d errors)", f.Feeds(), f.FeedErrors())
	}

	f.WriteReg(core.RegWWDTFEED, core.FeedSecond)
	f.WriteReg(core.RegWWDTFEED, 0x12)
	if f.FeedErrors() != 2 {
		t.Errorf("Expected 2 feed errors, got %d", f.FeedErrors())
	}
}

func TestAccessString(t *testing.T) {
	f := New()
	f.WriteReg(core.RegSYSAHBCLKDIV, 3)
	f.ModifyReg(core.RegPDRUNCFG, core.PDSysPLL, 0)
	f.EnableIRQ(core.IRQWatchdog)

	log := f.Log()
	if len(log) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(log))
	}
	if s := log[0].String(); !strings.Contains(s, "SYSAHBCLKDIV") || !strings.HasSuffix(s, "0x3") {
		t.Errorf("Unexpected write entry %q", s)
	}
	if s := log[1].String(); !strings.Contains(s, "clear=0x80") {
		t.Errorf("Unexpected modify entry %q", s)
	}
	if s := log[2].String(); !strings.HasSuffix(s, "enable 12") {
		t.Errorf("Unexpected irq entry %q", s)
	}
	if len(f.Writes(core.RegPDRUNCFG)) != 1 {
		t.Error("Writes should include modifies")
	}
}

func TestModifyDoesNotConsumePolls(t *testing.T) {
	f := New()
	f.LockDelay = 2
	f.ModifyReg(core.RegPDRUNCFG, core.PDSysPLL, 0)

	f.ModifyReg(core.RegSYSPLLSTAT, 0, 0)
	f.ModifyReg(core.RegSYSPLLSTAT, 0, 0)

	for i := 0; i < 2; i++ {
		if f.ReadReg(core.RegSYSPLLSTAT)&core.PLLLocked != 0 {
			t.Fatalf("PLL locked after %d polls, expected 2", i)
		}
	}
	if f.ReadReg(core.RegSYSPLLSTAT)&core.PLLLocked == 0 {
		t.Error("PLL not locked after the lock delay")
	}
}
