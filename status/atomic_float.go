package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as IEEE bits
// Zero value reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Max raises the gauge to val if val is larger and reports whether it did
// Used as a high-water mark, e.g. the longest frame delta seen by the loop
func (f *AtomicFloat) Max(val float64) bool {
	if math.IsNaN(val) {
		return false
	}
	for {
		old := f.bits.Load()
		if val <= math.Float64frombits(old) {
			return false
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(val)) {
			return true
		}
	}
}
