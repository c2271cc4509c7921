package core

// RegisterDriver is the hardware control surface the clock and watchdog code
// programs. Platform-specific implementations map each Reg onto its
// memory-mapped address; host implementations simulate or record accesses.
//
// Some register fields only update after a hardware-internal delay, so
// callers poll with ReadReg where the user manual requires it.
type RegisterDriver interface {
	// ReadReg returns the current value of a register
	ReadReg(r Reg) uint32

	// WriteReg stores a value into a register
	WriteReg(r Reg, v uint32)

	// ModifyReg performs a read-modify-write: v = (v &^ clear) | set
	ModifyReg(r Reg, clear, set uint32)

	// EnableIRQ enables an interrupt line at the NVIC
	EnableIRQ(irq IRQ)
}
