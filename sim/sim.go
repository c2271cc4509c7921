// Package sim simulates the LPC810 registers touched by the clock and
// watchdog code, so a board configuration can be exercised on a host.
package sim

import (
	"fmt"

	"lpcsys/core"
)

// Op is the kind of register access recorded in the log
type Op uint8

const (
	OpRead Op = iota
	OpWrite
	OpModify
	OpEnableIRQ
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpModify:
		return "modify"
	case OpEnableIRQ:
		return "irq"
	}
	return fmt.Sprintf("op%d", uint8(o))
}

// Access is one entry of the access log
type Access struct {
	Op    Op
	Reg   core.Reg
	Value uint32 // value written or read; bits set for OpModify; IRQ number for OpEnableIRQ
	Clear uint32 // bits cleared for OpModify
}

func (a Access) String() string {
	switch a.Op {
	case OpModify:
		return fmt.Sprintf("modify %-14s clear=0x%X set=0x%X", a.Reg, a.Clear, a.Value)
	case OpEnableIRQ:
		return fmt.Sprintf("irq    enable %d", a.Value)
	}
	return fmt.Sprintf("%-6s %-14s 0x%X", a.Op, a.Reg, a.Value)
}

// Reset values of the registers the core uses (UM10601)
var resetValues = [core.NumRegs]uint32{
	core.RegSYSAHBCLKCTRL: 0x0000001F,
	core.RegPDRUNCFG:      0x0000ED50,
	core.RegWDTOSCCTRL:    0x000000A0,
	core.RegSYSAHBCLKDIV:  0x00000001,
	core.RegIOCONPIO0_1:   0x00000090,
	core.RegSWMPINENABLE0: 0x000001B3,
	core.RegWWDTTC:        0x000000FF,
	core.RegWWDTWINDOW:    0x00FFFFFF,
}

// RegisterFile implements core.RegisterDriver over an in-memory register
// array. Clock updates are acknowledged and the PLL locks after a
// configurable number of polls; the watchdog feed register recognises the
// 0xAA/0x55 sequence.
type RegisterFile struct {
	regs [core.NumRegs]uint32
	log  []Access

	// AckDelay is the number of polls before an update enable reads back set
	AckDelay int
	// LockDelay is the number of polls of SYSPLLSTAT before the PLL reports lock
	LockDelay int
	// LogReads adds every read to the access log
	LogReads bool

	pendingPLLUpdate  int
	pendingMainUpdate int
	pllPolls          int

	irqs       map[core.IRQ]bool
	feedArmed  bool
	feeds      int
	feedErrors int
}

// New returns a register file in its reset state
func New() *RegisterFile {
	return &RegisterFile{
		regs: resetValues,
		irqs: make(map[core.IRQ]bool),
	}
}

// ReadReg implements core.RegisterDriver
func (f *RegisterFile) ReadReg(r core.Reg) uint32 {
	v := f.read(r)
	if f.LogReads {
		f.log = append(f.log, Access{Op: OpRead, Reg: r, Value: v})
	}
	return v
}

func (f *RegisterFile) read(r core.Reg) uint32 {
	switch r {
	case core.RegSYSPLLCLKUEN:
		return f.pollUpdate(&f.pendingPLLUpdate, r)
	case core.RegMAINCLKUEN:
		return f.pollUpdate(&f.pendingMainUpdate, r)
	case core.RegSYSPLLSTAT:
		if f.regs[core.RegPDRUNCFG]&core.PDSysPLL != 0 {
			f.pllPolls = 0
			return 0
		}
		if f.pllPolls < f.LockDelay {
			f.pllPolls++
			return 0
		}
		return core.PLLLocked
	case core.RegWWDTFEED:
		// write-only
		return 0
	}
	return f.regs[r]
}

func (f *RegisterFile) pollUpdate(pending *int, r core.Reg) uint32 {
	if *pending > 0 {
		*pending--
		return 0
	}
	return f.regs[r] & core.ClkUpdate
}

// WriteReg implements core.RegisterDriver
func (f *RegisterFile) WriteReg(r core.Reg, v uint32) {
	f.log = append(f.log, Access{Op: OpWrite, Reg: r, Value: v})
	f.write(r, v)
}

// ModifyReg implements core.RegisterDriver
func (f *RegisterFile) ModifyReg(r core.Reg, clear, set uint32) {
	f.log = append(f.log, Access{Op: OpModify, Reg: r, Value: set, Clear: clear})
	f.write(r, f.regs[r]&^clear|set)
}

// EnableIRQ implements core.RegisterDriver
func (f *RegisterFile) EnableIRQ(irq core.IRQ) {
	f.log = append(f.log, Access{Op: OpEnableIRQ, Value: uint32(irq)})
	f.irqs[irq] = true
}

func (f *RegisterFile) write(r core.Reg, v uint32) {
	switch r {
	case core.RegSYSPLLCLKUEN:
		if v&core.ClkUpdate != 0 {
			f.pendingPLLUpdate = f.AckDelay
		}
	case core.RegMAINCLKUEN:
		if v&core.ClkUpdate != 0 {
			f.pendingMainUpdate = f.AckDelay
		}
	case core.RegSYSPLLSTAT:
		// read-only
		return
	case core.RegWWDTFEED:
		f.feed(v)
		return
	case core.RegWWDTMOD:
		f.writeMOD(v)
		return
	}
	f.regs[r] = v
}

// feed tracks the two-write feed sequence. Any other value, or 0x55 without
// a preceding 0xAA, counts as a feed error.
func (f *RegisterFile) feed(v uint32) {
	switch {
	case v == core.FeedFirst:
		f.feedArmed = true
	case v == core.FeedSecond && f.feedArmed:
		f.feedArmed = false
		f.feeds++
	default:
		f.feedArmed = false
		f.feedErrors++
	}
}

// writeMOD applies the WWDT MOD semantics: WDEN and WDRESET stay set once
// written, WDINT is cleared by writing one, WDTOF takes the written value.
func (f *RegisterFile) writeMOD(v uint32) {
	old := f.regs[core.RegWWDTMOD]
	sticky := old & (core.WWDTEnable | core.WWDTReset)
	next := sticky | v&(core.WWDTEnable|core.WWDTReset|core.WWDTTOF)
	if old&core.WWDTInt != 0 && v&core.WWDTInt == 0 {
		next |= core.WWDTInt
	}
	f.regs[core.RegWWDTMOD] = next
}

// RaiseWarning sets the warning and, if timeout is true, the time-out flag,
// as the hardware does when the counter passes WARNINT or reaches zero.
func (f *RegisterFile) RaiseWarning(timeout bool) {
	f.regs[core.RegWWDTMOD] |= core.WWDTInt
	if timeout {
		f.regs[core.RegWWDTMOD] |= core.WWDTTOF
	}
}

// Peek returns a register value without side effects or logging
func (f *RegisterFile) Peek(r core.Reg) uint32 {
	return f.regs[r]
}

// Log returns the access log
func (f *RegisterFile) Log() []Access {
	return f.log
}

// Writes returns the logged writes and modifies of one register
func (f *RegisterFile) Writes(r core.Reg) []Access {
	var out []Access
	for _, a := range f.log {
		if a.Reg == r && (a.Op == OpWrite || a.Op == OpModify) {
			out = append(out, a)
		}
	}
	return out
}

// IRQEnabled reports whether irq was enabled
func (f *RegisterFile) IRQEnabled(irq core.IRQ) bool {
	return f.irqs[irq]
}

// Feeds returns the number of complete feed sequences seen
func (f *RegisterFile) Feeds() int {
	return f.feeds
}

// FeedErrors returns the number of malformed feed sequences seen
func (f *RegisterFile) FeedErrors() int {
	return f.feedErrors
}

// WatchdogRunning reports whether the WWDT is enabled and has been fed, the
// condition under which the counter runs.
func (f *RegisterFile) WatchdogRunning() bool {
	return f.regs[core.RegWWDTMOD]&core.WWDTEnable != 0 && f.feeds > 0
}

// IRCPoweredDown reports whether both IRC power-down bits are set
func (f *RegisterFile) IRCPoweredDown() bool {
	pd := core.PDIRC | core.PDIRCOut
	return f.regs[core.RegPDRUNCFG]&uint32(pd) == uint32(pd)
}
