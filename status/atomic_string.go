package status

import (
	"sync/atomic"
)

// MaxStringLen bounds stored string metrics
const MaxStringLen = 32

// AtomicString holds a short label, e.g. the name of the last dispatched event
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncated to MaxStringLen
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the label or empty string
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
