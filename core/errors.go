package core

// ConfigError reports a clock or watchdog configuration value that the
// hardware cannot be programmed with. It is returned before any register is
// touched.
type ConfigError struct {
	Field  string
	Value  uint32
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid " + e.Field + "=" + utoa(e.Value) + ": " + e.Reason
}

func configError(field string, value uint32, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// StallError is the panic value raised when a bounded busy-wait gives up.
// On hardware the wait is unbounded and the watchdog resets the chip instead;
// the bound only exists for hosts that have no watchdog.
type StallError struct {
	Reg   Reg
	Mask  uint32
	Spins uint32
}

func (e *StallError) Error() string {
	return "stalled waiting on " + e.Reg.String() + " mask=" + hex(e.Mask) +
		" after " + utoa(e.Spins) + " polls"
}
