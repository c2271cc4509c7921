//go:build !(tinygo && cortexm)

package core

import "sync/atomic"

var spinSink uint32

// spin burns n loop iterations (regular Go implementation, keeps the loop
// from being optimised away)
func spin(n uint32) {
	for i := uint32(0); i < n; i++ {
		atomic.AddUint32(&spinSink, 1)
	}
}
