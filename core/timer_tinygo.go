//go:build tinygo

package core

import "sync/atomic"

var sysTickPeriods uint32

// getSysTickPeriods returns the number of SysTick periods counted so far
func getSysTickPeriods() uint32 {
	return atomic.LoadUint32(&sysTickPeriods)
}

// setSysTickPeriods stores the period count
func setSysTickPeriods(n uint32) {
	atomic.StoreUint32(&sysTickPeriods, n)
}
