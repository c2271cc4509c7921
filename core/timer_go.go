//go:build !tinygo

package core

var sysTickPeriods uint32

// getSysTickPeriods returns the period count (regular Go implementation)
func getSysTickPeriods() uint32 {
	return sysTickPeriods
}

// setSysTickPeriods sets the period count (regular Go implementation)
func setSysTickPeriods(n uint32) {
	sysTickPeriods = n
}
