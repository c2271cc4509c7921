package core

// wdtPrescaler is the fixed divide-by-4 in front of every WWDT counter.
const wdtPrescaler = 4

// MsToTicks converts a duration in milliseconds into a WWDT counter value for
// an oscillator running at baseHz and divided by div. Results larger than max
// saturate at max.
//
// The product baseHz*ms exceeds 32 bits for ordinary timeouts, so the
// arithmetic is done in 64 bits.
func MsToTicks(baseHz, div, ms, max uint32) uint32 {
	if div == 0 {
		return 0
	}
	cnt := uint64(baseHz) * uint64(ms) / (uint64(div) * wdtPrescaler * 1000)
	if cnt > uint64(max) {
		return max
	}
	return uint32(cnt)
}

// TicksToMs is the inverse of MsToTicks, rounded down.
func TicksToMs(baseHz, div, ticks uint32) uint32 {
	if baseHz == 0 {
		return 0
	}
	ms := uint64(ticks) * uint64(div) * wdtPrescaler * 1000 / uint64(baseHz)
	if ms > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(ms)
}
