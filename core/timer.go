package core

// SysTickMax is the largest tick count a 24-bit SysTick reload can express
// (the reload register holds ticks-1).
const SysTickMax = 0x1000000

// TicksFromUs converts microseconds to system clock ticks. Results that do
// not fit 32 bits saturate.
func (s ClockState) TicksFromUs(us uint32) uint32 {
	ticks := uint64(us) * uint64(s.SystemHz) / 1000000
	if ticks > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(ticks)
}

// TicksToUs converts system clock ticks to microseconds
func (s ClockState) TicksToUs(ticks uint32) uint32 {
	if s.SystemHz == 0 {
		return 0
	}
	return uint32(uint64(ticks) * 1000000 / uint64(s.SystemHz))
}

// SysTickReload returns the number of system clock ticks in a periodic tick
// of ms milliseconds. The value does not include the -1 the RVR register
// expects.
//
// At the slowest clocks a handler can take longer than a short period; keep
// the handler's share of the period small.
func SysTickReload(sysHz, ms uint32) (uint32, error) {
	ticks := uint64(sysHz) * uint64(ms) / 1000
	if ticks == 0 {
		return 0, configError("systick_ms", ms, "shorter than one system clock tick")
	}
	if ticks > SysTickMax {
		return 0, configError("systick_ms", ms, "exceeds the 24-bit SysTick counter at "+utoa(sysHz)+"Hz")
	}
	return uint32(ticks), nil
}

// SysTickElapsed is called once per period from the SysTick handler. It
// returns the new period count, which wraps at 2^32.
func SysTickElapsed() uint32 {
	n := getSysTickPeriods() + 1
	setSysTickPeriods(n)
	return n
}
